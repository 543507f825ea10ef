package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewStore is the slice of the review repository the controller needs.
type ReviewStore interface {
	All(ctx context.Context) ([]models.Review, error)
	Insert(ctx context.Context, review models.Review) (primitive.ObjectID, error)
}

// ReviewController serves the public review listing and authenticated writes.
type ReviewController struct {
	store ReviewStore
}

func NewReviewController(store ReviewStore) *ReviewController {
	return &ReviewController{store: store}
}

// List handles GET /reviews. Public.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.store.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("review list failed", "error", err)
		response.Internal(w, "could not load reviews")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	response.JSON(w, http.StatusOK, reviews)
}

// Create handles POST /reviews. The review's email must match the caller.
func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		Name    string  `json:"name"    validate:"required,max=200"`
		Email   string  `json:"email"   validate:"required,email"`
		Rating  float64 `json:"rating"  validate:"required,gte=1,max=5"`
		Details string  `json:"details" validate:"required,max=2000"`
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
	if body.Email != email {
		response.Forbidden(w)
		return
	}

	id, err := c.store.Insert(r.Context(), models.Review{
		Name:    body.Name,
		Email:   body.Email,
		Rating:  body.Rating,
		Details: body.Details,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("review insert failed", "error", err)
		response.Internal(w, "could not create review")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{"insertedId": id})
}
