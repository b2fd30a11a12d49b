package routes

import (
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, auth *handlers.AuthHandler, restaurants *handlers.RestaurantHandler, meals *handlers.MealHandler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/signup", auth.SignUp)
		public.POST("/auth/login", auth.Login)

		public.GET("/restaurants", restaurants.List)
		public.GET("/restaurants/:id", restaurants.Get)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/profile", auth.Profile)

		// Restaurant mutation (create is admin-only, the rest owner-only)
		authed.POST("/restaurants", middleware.RoleRequired(models.RoleAdmin), restaurants.Create)
		authed.PUT("/restaurants/:id", restaurants.Update)
		authed.DELETE("/restaurants/:id", restaurants.Delete)
		authed.PUT("/restaurants/upload/:id", restaurants.UploadImages)

		// Meals nested under their restaurant
		authed.GET("/restaurants/:id/meals", meals.List)
		authed.POST("/restaurants/:id/meals", meals.Create)
		authed.GET("/meals/:id", meals.Get)
		authed.PUT("/meals/:id", meals.Update)
		authed.DELETE("/meals/:id", meals.Delete)
	}
}
