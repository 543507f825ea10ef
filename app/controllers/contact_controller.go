package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactStore is the slice of the contact repository the controller needs.
type ContactStore interface {
	Insert(ctx context.Context, msg models.ContactMessage) (primitive.ObjectID, error)
	All(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// ContactController handles contact messages: owner-scoped creation,
// admin-only listing and deletion.
type ContactController struct {
	store ContactStore
}

func NewContactController(store ContactStore) *ContactController {
	return &ContactController{store: store}
}

// Create handles POST /contact. The message's email must match the caller.
func (c *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.EmailFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		Email   string `json:"email"   validate:"required,email"`
		Name    string `json:"name"    validate:"required,max=200"`
		Message string `json:"message" validate:"required,max=5000"`
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
	if body.Email != claim {
		response.Forbidden(w)
		return
	}

	id, err := c.store.Insert(r.Context(), models.ContactMessage{
		Email:   body.Email,
		Name:    body.Name,
		Message: body.Message,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("contact insert failed", "error", err)
		response.Internal(w, "could not save message")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{"insertedId": id})
}

// List handles GET /contact. Admin-only.
func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := c.store.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("contact list failed", "error", err)
		response.Internal(w, "could not load messages")
		return
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	response.JSON(w, http.StatusOK, msgs)
}

// Delete handles DELETE /contact/{id}. Admin-only.
func (c *ContactController) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("contact delete failed", "error", err)
		response.Internal(w, "could not delete message")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"deletedCount": deleted})
}
