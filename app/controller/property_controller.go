package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"mariafaz-analytics/models"
	"mariafaz-analytics/repository"
	"mariafaz-analytics/service"
)

// Max accepted upload size for property photos (8 MB)
const maxPhotoUpload = 8 << 20

// PropertyController handles HTTP requests for the property registry
type PropertyController struct {
	repository repository.PropertyRepositoryInterface
}

// NewPropertyController creates a new PropertyController
func NewPropertyController(repo repository.PropertyRepositoryInterface) *PropertyController {
	return &PropertyController{
		repository: repo,
	}
}

// Create handles POST /admin/properties
func (c *PropertyController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Create: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.ID == "" || req.Name == "" || req.MarketID == "" {
		http.Error(w, "id, name and market_id are required", http.StatusBadRequest)
		return
	}
	if req.BasePrice <= 0 {
		http.Error(w, "base_price must be greater than 0", http.StatusBadRequest)
		return
	}

	property := &models.Property{
		ID:        req.ID,
		Name:      req.Name,
		MarketID:  req.MarketID,
		BasePrice: req.BasePrice,
	}

	ctx := context.Background()
	created, err := c.repository.Create(ctx, property)
	if err != nil {
		log.Printf("❌ Create: Error creating property: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create property: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Create: Property created id=%s", created.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		log.Printf("❌ Create: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Get handles GET /admin/properties/:id
func (c *PropertyController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Get: Received %s request to %s", r.Method, r.URL.Path)

	id := strings.TrimPrefix(r.URL.Path, "/admin/properties/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	property, err := c.repository.GetByID(ctx, id)
	if err != nil {
		log.Printf("❌ Get: Error fetching property: %v", err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch property: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(property); err != nil {
		log.Printf("❌ Get: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// UploadPhoto handles POST /admin/properties/:id/photo
// The raw image body is optimized to a dashboard-sized JPEG before storage.
func (c *PropertyController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadPhoto: Received %s request to %s", r.Method, r.URL.Path)

	path := strings.TrimPrefix(r.URL.Path, "/admin/properties/")
	id := strings.TrimSuffix(path, "/photo")
	if id == "" || id == path {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	if _, err := c.repository.GetByID(ctx, id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch property: %v", err), http.StatusInternalServerError)
		return
	}

	imageData, err := io.ReadAll(io.LimitReader(r.Body, maxPhotoUpload))
	if err != nil {
		log.Printf("❌ UploadPhoto: Failed to read body: %v", err)
		http.Error(w, "Failed to read photo data", http.StatusBadRequest)
		return
	}
	if len(imageData) == 0 {
		http.Error(w, "photo body is required", http.StatusBadRequest)
		return
	}

	optimized, err := service.OptimizePropertyPhoto(imageData)
	if err != nil {
		log.Printf("❌ UploadPhoto: Failed to optimize photo: %v", err)
		http.Error(w, fmt.Sprintf("Failed to optimize photo: %v", err), http.StatusBadRequest)
		return
	}

	photo := &models.PropertyPhoto{
		PropertyID:  id,
		Photo:       optimized,
		ContentType: "image/jpeg",
	}
	if err := c.repository.SavePhoto(ctx, photo); err != nil {
		log.Printf("❌ UploadPhoto: Error saving photo: %v", err)
		http.Error(w, fmt.Sprintf("Failed to save photo: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ UploadPhoto: Photo saved for property %s (%d bytes)", id, len(optimized))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"property_id":%q,"bytes":%d}`, id, len(optimized))))
}

// GetPhoto handles GET /admin/properties/:id/photo
func (c *PropertyController) GetPhoto(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/properties/")
	id := strings.TrimSuffix(path, "/photo")
	if id == "" || id == path {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	photo, err := c.repository.GetPhoto(ctx, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch photo: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", photo.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(photo.Photo)
}
