package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the slice of the user repository the controller needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, user models.User) (primitive.ObjectID, error)
	All(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id, role string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// UserController manages user records and role administration.
type UserController struct {
	store UserStore
}

func NewUserController(store UserStore) *UserController {
	return &UserController{store: store}
}

// Create handles POST /users. Registration is idempotent: re-posting an
// existing email acknowledges without inserting a second record.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"  validate:"required,max=200"`
		Email string `json:"email" validate:"required,email"`
		Photo string `json:"photo"`
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

	_, err = c.store.FindByEmail(r.Context(), body.Email)
	if err == nil {
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"message":    "User already exists",
			"insertedId": nil,
		})
		return
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		logger.WithCtx(r.Context()).Error("user lookup failed", "error", err)
		response.Internal(w, "could not create user")
		return
	}

	id, err := c.store.Insert(r.Context(), models.User{
		Name:  body.Name,
		Email: body.Email,
		Photo: body.Photo,
		Role:  models.RoleRegular,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("user insert failed", "error", err)
		response.Internal(w, "could not create user")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{"insertedId": id})
}

// List handles GET /users. Admin-only.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.store.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("user list failed", "error", err)
		response.Internal(w, "could not load users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	response.JSON(w, http.StatusOK, users)
}

// CheckUser handles GET /users/checkUser?email=. Public existence probe used
// by the registration form.
func (c *UserController) CheckUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}

	_, err := c.store.FindByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.WithCtx(r.Context()).Error("user check failed", "error", err)
		response.Internal(w, "could not check user")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"exists": err == nil})
}

// AdminProbe handles GET /users/admin/{email}. Self-only: the probed email
// must match the caller's claim, and a mismatch returns before any lookup.
func (c *UserController) AdminProbe(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.EmailFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	email := chi.URLParam(r, "email")
	if email != claim {
		response.Forbidden(w)
		return
	}

	user, err := c.store.FindByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.WithCtx(r.Context()).Error("admin probe failed", "error", err)
		response.Internal(w, "could not check role")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"admin": user.IsAdmin()})
}

// Promote handles PATCH /users/admin/{id}. Admin-only role promotion.
func (c *UserController) Promote(w http.ResponseWriter, r *http.Request) {
	modified, err := c.store.UpdateRole(r.Context(), chi.URLParam(r, "id"), models.RoleAdmin)
	if err != nil {
		logger.WithCtx(r.Context()).Error("role promotion failed", "error", err)
		response.Internal(w, "could not update role")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"modifiedCount": modified})
}

// Remove handles DELETE /users/admin/{id}. Admin-only.
func (c *UserController) Remove(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("user delete failed", "error", err)
		response.Internal(w, "could not delete user")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"deletedCount": deleted})
}
