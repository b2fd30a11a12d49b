package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"restaurant-api/geocode"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// resPerPage is the fixed listing page size
const resPerPage = 2

// validate re-checks field formats on partial updates, where there is no
// request struct for gin's binding tags to run against
var validate = validator.New()

type RestaurantHandler struct {
	DB    *gorm.DB
	Store storage.ObjectStore
	Geo   geocode.Geocoder
	Log   zerolog.Logger
}

func NewRestaurantHandler(db *gorm.DB, store storage.ObjectStore, geo geocode.Geocoder, log zerolog.Logger) *RestaurantHandler {
	return &RestaurantHandler{DB: db, Store: store, Geo: geo, Log: log}
}

// parseID validates a path parameter as a record identifier
func parseID(c *gin.Context, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID. Please correct ID"})
		return 0, false
	}
	return uint(id), true
}

// canMutate reports whether the caller owns the resource
func canMutate(ownerID, callerID uint) bool {
	return ownerID == callerID
}

type CreateRestaurantRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Description string                    `json:"description" binding:"required"`
	Email       string                    `json:"email" binding:"omitempty,email"`
	PhoneNo     string                    `json:"phone_no"`
	Address     string                    `json:"address" binding:"required"`
	Category    models.RestaurantCategory `json:"category" binding:"required"`
}

// restaurantUpdatable lists the fields a partial update may touch. Owner and
// location are deliberately absent: owner is immutable, location is only ever
// derived from the address at creation.
var restaurantUpdatable = map[string]bool{
	"name":        true,
	"description": true,
	"email":       true,
	"phone_no":    true,
	"address":     true,
	"category":    true,
}

// List returns a page of restaurants, optionally filtered by a
// case-insensitive keyword match on name
func (h *RestaurantHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	query := h.DB.Preload("Images").Order("id")
	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var restaurants []models.Restaurant
	if err := query.Limit(resPerPage).Offset((page - 1) * resPerPage).Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// Create geocodes the submitted address and persists a restaurant owned by
// the caller. Admin-only by route middleware.
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRestaurantCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter correct category"})
		return
	}

	location, err := h.Geo.Locate(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResult) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not resolve the restaurant address"})
			return
		}
		h.Log.Error().Err(err).Str("address", req.Address).Msg("geocoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve restaurant location"})
		return
	}

	restaurant := models.Restaurant{
		UserID:      middleware.GetUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhoneNo:     req.PhoneNo,
		Address:     req.Address,
		Category:    req.Category,
		Location:    *location,
	}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}

// Get fetches a single restaurant with its images and meals
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "restaurant")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.Preload("Images").Preload("Meals").First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// Update applies a partial update to a restaurant owned by the caller
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "restaurant")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !canMutate(restaurant.UserID, middleware.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can not update this restaurant"})
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
	if _, found := req["location"]; found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot provide the location"})
		return
	}

	update := map[string]interface{}{}
	for k, v := range req {
		if restaurantUpdatable[k] {
			update[k] = v
		}
	}
	if cat, found := update["category"]; found {
		s, _ := cat.(string)
		if !models.ValidRestaurantCategory(models.RestaurantCategory(s)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter correct category"})
			return
		}
	}
	if email, found := update["email"]; found {
		s, ok := email.(string)
		if !ok || validate.Var(s, "omitempty,email") != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter correct email address"})
			return
		}
	}
	if len(update) == 0 {
		c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
		return
	}
	if err := h.DB.Model(&restaurant).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// Delete removes a restaurant owned by the caller. Its stored images are
// deleted first; if that fails the record is left intact and the response
// reports deleted:false.
func (h *RestaurantHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "restaurant")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.Preload("Images").First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !canMutate(restaurant.UserID, middleware.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can not delete this restaurant"})
		return
	}

	if len(restaurant.Images) > 0 {
		if err := h.Store.Delete(c.Request.Context(), restaurant.Images); err != nil {
			h.Log.Warn().Err(err).Uint("restaurant_id", id).Msg("image deletion failed, keeping record")
			c.JSON(http.StatusOK, gin.H{"deleted": false})
			return
		}
	}

	h.DB.Where("restaurant_id = ?", id).Delete(&models.Image{})
	if err := h.DB.Delete(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadImages stores the submitted files and replaces the restaurant's image
// list with their descriptors
func (h *RestaurantHandler) UploadImages(c *gin.Context) {
	id, ok := parseID(c, "restaurant")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !canMutate(restaurant.UserID, middleware.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can not upload images for this restaurant"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form required"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer f.Close()
		files = append(files, storage.File{Name: fh.Filename, Body: f})
	}

	images, err := h.Store.Upload(c.Request.Context(), files)
	if err != nil {
		h.Log.Error().Err(err).Uint("restaurant_id", id).Msg("image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload images"})
		return
	}

	// Replace the descriptor list wholesale
	h.DB.Where("restaurant_id = ?", id).Delete(&models.Image{})
	for i := range images {
		images[i].RestaurantID = id
	}
	if err := h.DB.Create(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image records"})
		return
	}
	restaurant.Images = images
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}
