package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// StatsController serves the admin and per-user dashboards.
type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Admin handles GET /admin-stats?email=. Admin-only; the email parameter
// must still match the caller.
func (c *StatsController) Admin(w http.ResponseWriter, r *http.Request) {
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

	stats, err := c.stats.AdminStats(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin stats failed", "error", err)
		response.Internal(w, "could not compute statistics")
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

// User handles GET /user-stats?email=. Any authenticated user, own email only.
func (c *StatsController) User(w http.ResponseWriter, r *http.Request) {
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

	stats, err := c.stats.UserStats(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("user stats failed", "error", err)
		response.Internal(w, "could not compute statistics")
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
