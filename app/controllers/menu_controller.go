package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"github.com/shashiranjanraj/bistro/pkg/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuStore is the slice of the menu repository the controller needs.
type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id string) (models.MenuItem, error)
	Insert(ctx context.Context, item models.MenuItem) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, item models.MenuItem) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// MenuController serves the public menu listing and the admin-only writes.
type MenuController struct {
	store MenuStore
}

func NewMenuController(store MenuStore) *MenuController {
	return &MenuController{store: store}
}

// List handles GET /menu. Public.
func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.store.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("menu list failed", "error", err)
		response.Internal(w, "could not load menu")
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	response.JSON(w, http.StatusOK, items)
}

// Show handles GET /menu/{id}. Public.
func (c *MenuController) Show(w http.ResponseWriter, r *http.Request) {
	item, err := c.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Message(w, http.StatusNotFound, "menu item not found")
		return
	}
	response.JSON(w, http.StatusOK, item)
}

// Create handles POST /menu. Admin-only.
func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string  `json:"name"     validate:"required,max=200"`
		Category    string  `json:"category" validate:"required,max=100"`
		Price       float64 `json:"price"    validate:"required,gt=0"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.store.Insert(r.Context(), models.MenuItem{
		Name:        body.Name,
		Category:    body.Category,
		Price:       body.Price,
		Description: body.Description,
		Image:       body.Image,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("menu insert failed", "error", err)
		response.Internal(w, "could not create menu item")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{"insertedId": id})
}

// Update handles PATCH /menu/{id}. Admin-only.
func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string  `json:"name"     validate:"required,max=200"`
		Category    string  `json:"category" validate:"required,max=100"`
		Price       float64 `json:"price"    validate:"required,gt=0"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	modified, err := c.store.Update(r.Context(), chi.URLParam(r, "id"), models.MenuItem{
		Name:        body.Name,
		Category:    body.Category,
		Price:       body.Price,
		Description: body.Description,
		Image:       body.Image,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("menu update failed", "error", err)
		response.Internal(w, "could not update menu item")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"modifiedCount": modified})
}

// Delete handles DELETE /menu/{id}. Admin-only.
func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("menu delete failed", "error", err)
		response.Internal(w, "could not delete menu item")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"deletedCount": deleted})
}

// UploadImage handles POST /menu/image. Admin-only. Stores the uploaded file
// on the configured disk and returns its public URL.
func (c *MenuController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.BadRequest(w, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Internal(w, "could not read upload")
		return
	}

	name := fmt.Sprintf("menu/%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename))
	if err := storage.Put(name, data); err != nil {
		logger.WithCtx(r.Context()).Error("image upload failed", "error", err, "path", name)
		response.Internal(w, "could not store image")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"url": storage.URL(name)})
}
