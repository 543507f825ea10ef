package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	n   int64
	err error
}

func (f fakeCounter) Count(context.Context) (int64, error) { return f.n, f.err }

type fakeReviewCounter struct {
	counts map[string]int64
}

func (f fakeReviewCounter) CountByEmail(_ context.Context, email string) (int64, error) {
	return f.counts[email], nil
}

type fakePaymentStats struct {
	counts  map[string]int64
	summary models.RevenueSummary
	sales   []models.CategorySale
	err     error
}

func (f fakePaymentStats) CountByEmail(_ context.Context, email string) (int64, error) {
	return f.counts[email], nil
}

func (f fakePaymentStats) RevenueSummary(context.Context) (models.RevenueSummary, error) {
	return f.summary, f.err
}

func (f fakePaymentStats) CategorySales(context.Context) ([]models.CategorySale, error) {
	return f.sales, f.err
}

func TestAdminStats(t *testing.T) {
	svc := services.NewStatsService(
		fakeCounter{n: 42},
		fakeCounter{n: 17},
		fakeReviewCounter{},
		fakePaymentStats{
			summary: models.RevenueSummary{Revenue: 1234.5, Orders: 31},
			sales: []models.CategorySale{
				{Category: "salad", Total: 450.0, Count: 40},
				{Category: "dessert", Total: 120.5, Count: 22},
			},
		},
	)

	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(42), stats.Customers)
	require.Equal(t, int64(17), stats.Products)
	require.Equal(t, 1234.5, stats.Revenue)
	require.Equal(t, int64(31), stats.Orders)
	require.Len(t, stats.CompletedOrders, 2)
	require.Equal(t, "salad", stats.CompletedOrders[0].Category)
}

func TestAdminStatsZeroPayments(t *testing.T) {
	svc := services.NewStatsService(
		fakeCounter{n: 5},
		fakeCounter{n: 10},
		fakeReviewCounter{},
		fakePaymentStats{}, // zero-valued summary, no sales
	)

	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	require.Zero(t, stats.Revenue)
	require.Zero(t, stats.Orders)
	require.NotNil(t, stats.CompletedOrders)
	require.Empty(t, stats.CompletedOrders)
}

func TestAdminStatsPropagatesStoreErrors(t *testing.T) {
	svc := services.NewStatsService(
		fakeCounter{err: errors.New("connection reset")},
		fakeCounter{},
		fakeReviewCounter{},
		fakePaymentStats{},
	)

	_, err := svc.AdminStats(context.Background())
	require.Error(t, err)
}

func TestUserStats(t *testing.T) {
	svc := services.NewStatsService(
		fakeCounter{n: 42},
		fakeCounter{n: 17},
		fakeReviewCounter{counts: map[string]int64{"diner@example.com": 4}},
		fakePaymentStats{counts: map[string]int64{"diner@example.com": 7}},
	)

	stats, err := svc.UserStats(context.Background(), "diner@example.com")
	require.NoError(t, err)

	require.Equal(t, int64(4), stats.Review)
	require.Equal(t, int64(7), stats.Payment)
	require.Equal(t, int64(17), stats.Menu)
}
