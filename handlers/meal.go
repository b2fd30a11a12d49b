package handlers

import (
	"net/http"
	"strings"

	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MealHandler struct {
	DB *gorm.DB
}

func NewMealHandler(db *gorm.DB) *MealHandler {
	return &MealHandler{DB: db}
}

type CreateMealRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Price       *float64            `json:"price" binding:"required,gte=0"`
	Category    models.MealCategory `json:"category" binding:"required"`
}

var mealUpdatable = map[string]bool{
	"name":        true,
	"description": true,
	"price":       true,
	"category":    true,
}

// List returns the meals of one restaurant, optionally filtered by a
// case-insensitive keyword match on name
func (h *MealHandler) List(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurant")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	query := h.DB.Where("restaurant_id = ?", restaurantID).Order("id")
	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	var meals []models.Meal
	if err := query.Find(&meals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// Create adds a meal to a restaurant owned by the caller
func (h *MealHandler) Create(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurant")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	callerID := middleware.GetUserID(c)
	if !canMutate(restaurant.UserID, callerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can not add a meal to this restaurant"})
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidMealCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter correct category for this meal"})
		return
	}

	meal := models.Meal{
		RestaurantID: restaurantID,
		UserID:       callerID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        *req.Price,
		Category:     req.Category,
	}
	if err := h.DB.Create(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// Get fetches a single meal
func (h *MealHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "meal")
	if !ok {
		return
	}
	var meal models.Meal
	if err := h.DB.First(&meal, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// Update applies a partial update to a meal owned by the caller
func (h *MealHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "meal")
	if !ok {
		return
	}
	var meal models.Meal
	if err := h.DB.First(&meal, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	if !canMutate(meal.UserID, middleware.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can not update this meal"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, found := req["user_id"]; found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot provide the user ID"})
		return
	}
	if _, found := req["restaurant_id"]; found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change the restaurant of a meal"})
		return
	}

	update := map[string]interface{}{}
	for k, v := range req {
		if mealUpdatable[k] {
			update[k] = v
		}
	}
	if cat, found := update["category"]; found {
		s, _ := cat.(string)
		if !models.ValidMealCategory(models.MealCategory(s)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter correct category for this meal"})
			return
		}
	}
	if price, found := update["price"]; found {
		f, ok := price.(float64)
		if !ok || f < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Meal price can not be negative"})
			return
		}
	}
	if len(update) == 0 {
		c.JSON(http.StatusOK, gin.H{"meal": meal})
		return
	}
	if err := h.DB.Model(&meal).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// Delete removes a meal owned by the caller and returns the removed record
func (h *MealHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "meal")
	if !ok {
		return
	}
	var meal models.Meal
	if err := h.DB.First(&meal, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	if !canMutate(meal.UserID, middleware.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can not delete this meal"})
		return
	}
	if err := h.DB.Delete(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}
