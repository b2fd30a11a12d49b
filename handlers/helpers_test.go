package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"restaurant-api/config"
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/routes"
	"restaurant-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeStore is an in-process ObjectStore for tests
type fakeStore struct {
	failDelete bool
	deleted    []models.Image
}

func (f *fakeStore) Upload(_ context.Context, files []storage.File) ([]models.Image, error) {
	images := make([]models.Image, 0, len(files))
	for _, file := range files {
		if _, err := io.ReadAll(file.Body); err != nil {
			return nil, err
		}
		images = append(images, models.Image{
			Key:    "restaurants/" + file.Name,
			Bucket: "test-bucket",
			URL:    "https://test-bucket.s3.amazonaws.com/restaurants/" + file.Name,
			ETag:   "etag-" + file.Name,
		})
	}
	return images, nil
}

func (f *fakeStore) Delete(_ context.Context, images []models.Image) error {
	if f.failDelete {
		return errors.New("object store unavailable")
	}
	f.deleted = append(f.deleted, images...)
	return nil
}

// fakeGeocoder resolves every address to the same Manhattan location
type fakeGeocoder struct{}

func (fakeGeocoder) Locate(_ context.Context, address string) (*models.Location, error) {
	return &models.Location{
		Type:             "Point",
		Latitude:         40.7128,
		Longitude:        -74.006,
		FormattedAddress: address + ", New York, NY 10001, United States",
		City:             "New York",
		State:            "NY",
		Zipcode:          "10001",
		Country:          "United States",
	}, nil
}

// setupServer builds a router over a fresh database and the given fake store
func setupServer(t *testing.T, store storage.ObjectStore) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := config.InitDB(filepath.Join(t.TempDir(), "test.db"))

	r := gin.New()
	routes.SetupRoutes(
		r,
		handlers.NewAuthHandler(db),
		handlers.NewRestaurantHandler(db, store, fakeGeocoder{}, zerolog.Nop()),
		handlers.NewMealHandler(db),
	)
	return r, db
}

// createUser persists a user directly and returns it with a valid token
func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: "Test User", Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, db.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

// doJSON performs a JSON request, attaching the token when non-empty
func doJSON(r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart upload of named dummy files
func doMultipart(r *gin.Engine, path, token string, filenames ...string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for i, name := range filenames {
		fw, _ := mw.CreateFormFile("files", name)
		fmt.Fprintf(fw, "image-bytes-%d", i)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// seedRestaurant persists a restaurant owned by ownerID
func seedRestaurant(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		UserID:      ownerID,
		Name:        name,
		Description: "A place to eat",
		Address:     "1 Main St",
		Category:    models.CategoryFastFood,
		Location:    models.Location{Type: "Point", Latitude: 40.7128, Longitude: -74.006},
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

// seedMeal persists a meal under the given restaurant and owner
func seedMeal(t *testing.T, db *gorm.DB, restaurantID, ownerID uint, name string) models.Meal {
	t.Helper()
	meal := models.Meal{
		RestaurantID: restaurantID,
		UserID:       ownerID,
		Name:         name,
		Description:  "Tasty",
		Price:        9.99,
		Category:     models.MealPasta,
	}
	require.NoError(t, db.Create(&meal).Error)
	return meal
}
