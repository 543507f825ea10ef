package routes

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/payments"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"github.com/shashiranjanraj/bistro/pkg/router"
)

// RegisterAPI wires every route. Three protection tiers: public, verified
// (bearer token), and admin (verified plus a per-request role check).
func RegisterAPI(r *router.Router) {
	users := repositories.NewUserRepository()
	menu := repositories.NewMenuRepository()
	reviews := repositories.NewReviewRepository()
	carts := repositories.NewCartRepository()
	contacts := repositories.NewContactRepository()
	paymentsRepo := repositories.NewPaymentRepository()

	stats := services.NewStatsService(users, menu, reviews, paymentsRepo)

	authC := controllers.NewAuthController()
	menuC := controllers.NewMenuController(menu)
	reviewC := controllers.NewReviewController(reviews)
	cartC := controllers.NewCartController(carts)
	userC := controllers.NewUserController(users)
	contactC := controllers.NewContactController(contacts)
	paymentC := controllers.NewPaymentController(paymentsRepo, carts, payments.NewStripeClient())
	statsC := controllers.NewStatsController(stats)

	verify := middleware.Verify
	admin := middleware.RequireAdmin(users)

	// liveness + metrics
	r.Get("/", "root", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "bistro api is running"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// token issuance
	r.Post("/jwt", "auth.issue", authC.Issue)

	// menu: public reads, admin writes
	r.Get("/menu", "menu.list", menuC.List)
	r.Get("/menu/{id}", "menu.show", menuC.Show)
	r.Post("/menu", "menu.create", menuC.Create, verify, admin)
	r.Post("/menu/image", "menu.upload", menuC.UploadImage, verify, admin)
	r.Patch("/menu/{id}", "menu.update", menuC.Update, verify, admin)
	r.Delete("/menu/{id}", "menu.delete", menuC.Delete, verify, admin)

	// reviews: public read, verified write
	r.Get("/reviews", "reviews.list", reviewC.List)
	r.Post("/reviews", "reviews.create", reviewC.Create, verify)

	// carts: owner-scoped
	r.Get("/carts", "carts.list", cartC.List, verify)
	r.Post("/carts", "carts.create", cartC.Create, verify)
	r.Delete("/carts/{id}", "carts.delete", cartC.Delete, verify)

	// users
	r.Post("/users", "users.create", userC.Create)
	r.Get("/users", "users.list", userC.List, verify, admin)
	r.Get("/users/checkUser", "users.check", userC.CheckUser)
	r.Get("/users/admin/{email}", "users.adminProbe", userC.AdminProbe, verify)
	r.Patch("/users/admin/{id}", "users.promote", userC.Promote, verify, admin)
	r.Delete("/users/admin/{id}", "users.remove", userC.Remove, verify, admin)

	// contact messages
	r.Post("/contact", "contact.create", contactC.Create, verify)
	r.Get("/contact", "contact.list", contactC.List, verify, admin)
	r.Delete("/contact/{id}", "contact.delete", contactC.Delete, verify, admin)

	// payments
	r.Post("/create-payment-intent", "payments.intent", paymentC.CreateIntent, verify)
	r.Get("/payment", "payments.history", paymentC.History, verify)
	r.Post("/payment", "payments.settle", paymentC.Settle, verify)

	// dashboards
	r.Get("/admin-stats", "stats.admin", statsC.Admin, verify, admin)
	r.Get("/user-stats", "stats.user", statsC.User, verify)
}
