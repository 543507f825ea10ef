package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/bistro/app/models"
)

// UserCounter counts registered users.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// MenuCounter counts menu items.
type MenuCounter interface {
	Count(ctx context.Context) (int64, error)
}

// ReviewCounter counts reviews by author.
type ReviewCounter interface {
	CountByEmail(ctx context.Context, email string) (int64, error)
}

// PaymentStats is the slice of the payment repository the dashboards need.
type PaymentStats interface {
	CountByEmail(ctx context.Context, email string) (int64, error)
	RevenueSummary(ctx context.Context) (models.RevenueSummary, error)
	CategorySales(ctx context.Context) ([]models.CategorySale, error)
}

// StatsService assembles the admin and per-user dashboard figures.
type StatsService struct {
	Users    UserCounter
	Menu     MenuCounter
	Reviews  ReviewCounter
	Payments PaymentStats
}

func NewStatsService(users UserCounter, menu MenuCounter, reviews ReviewCounter, payments PaymentStats) *StatsService {
	return &StatsService{Users: users, Menu: menu, Reviews: reviews, Payments: payments}
}

// AdminStats returns the storefront-wide dashboard: customer and product
// counts, total revenue and orders, and per-category sales.
func (s *StatsService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	customers, err := s.Users.Count(ctx)
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("services: count users: %w", err)
	}
	products, err := s.Menu.Count(ctx)
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("services: count menu: %w", err)
	}
	summary, err := s.Payments.RevenueSummary(ctx)
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("services: revenue summary: %w", err)
	}
	sales, err := s.Payments.CategorySales(ctx)
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("services: category sales: %w", err)
	}
	if sales == nil {
		sales = []models.CategorySale{}
	}

	return models.AdminStats{
		Customers:       customers,
		Products:        products,
		Revenue:         summary.Revenue,
		Orders:          summary.Orders,
		CompletedOrders: sales,
	}, nil
}

// UserStats returns one user's activity counts alongside the menu size.
func (s *StatsService) UserStats(ctx context.Context, email string) (models.UserStats, error) {
	reviews, err := s.Reviews.CountByEmail(ctx, email)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("services: count reviews: %w", err)
	}
	payments, err := s.Payments.CountByEmail(ctx, email)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("services: count payments: %w", err)
	}
	menu, err := s.Menu.Count(ctx)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("services: count menu: %w", err)
	}

	return models.UserStats{
		Review:  reviews,
		Payment: payments,
		Menu:    menu,
	}, nil
}
