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

// CartStore is the slice of the cart repository the controller needs.
type CartStore interface {
	ByEmail(ctx context.Context, email string) ([]models.CartEntry, error)
	Insert(ctx context.Context, entry models.CartEntry) (primitive.ObjectID, error)
	Delete(ctx context.Context, email, id string) (int64, error)
}

// CartController serves a user's cart. Every operation is owner-scoped: the
// email on the request must match the verified claim.
type CartController struct {
	store CartStore
}

func NewCartController(store CartStore) *CartController {
	return &CartController{store: store}
}

// List handles GET /carts?email=.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.EmailFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}
	if email != claim {
		response.Forbidden(w)
		return
	}

	entries, err := c.store.ByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart list failed", "error", err)
		response.Internal(w, "could not load cart")
		return
	}
	if entries == nil {
		entries = []models.CartEntry{}
	}
	response.JSON(w, http.StatusOK, entries)
}

// Create handles POST /carts. The entry's email must match the caller.
func (c *CartController) Create(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.EmailFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		Email      string  `json:"email"      validate:"required,email"`
		MenuItemID string  `json:"menuItemId" validate:"required"`
		Name       string  `json:"name"       validate:"required,max=200"`
		Image      string  `json:"image"`
		Quantity   int     `json:"quantity"   validate:"required,gte=1"`
		Price      float64 `json:"price"      validate:"required,gt=0"`
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

	id, err := c.store.Insert(r.Context(), models.CartEntry{
		Email:      body.Email,
		MenuItemID: body.MenuItemID,
		Name:       body.Name,
		Image:      body.Image,
		Quantity:   body.Quantity,
		Price:      body.Price,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart insert failed", "error", err)
		response.Internal(w, "could not add to cart")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{"insertedId": id})
}

// Delete handles DELETE /carts/{id}. The repository filter is owner-scoped,
// so deleting another user's entry silently matches nothing.
func (c *CartController) Delete(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.EmailFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	deleted, err := c.store.Delete(r.Context(), claim, chi.URLParam(r, "id"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart delete failed", "error", err)
		response.Internal(w, "could not delete cart entry")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"deletedCount": deleted})
}
