package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// AuthController mints bearer tokens. There is no password exchange: the
// front end authenticates the user upstream and trades the verified email
// for an API token here.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// Issue handles POST /jwt.
func (c *AuthController) Issue(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
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

	token, err := auth.GenerateToken(body.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("token generation failed", "error", err)
		response.Internal(w, "could not issue token")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"token": token})
}
