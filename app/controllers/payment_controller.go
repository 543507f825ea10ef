package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/payments"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStore is the slice of the payment repository the controller needs.
type PaymentStore interface {
	ByEmail(ctx context.Context, email string) ([]models.Payment, error)
	Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error)
}

// CartSettler clears the cart entries a payment settled.
type CartSettler interface {
	DeleteSettled(ctx context.Context, email string, ids []string) (int64, error)
}

// PaymentController bridges checkout to the payment processor and records
// settlements.
type PaymentController struct {
	store   PaymentStore
	carts   CartSettler
	intents payments.IntentCreator
}

func NewPaymentController(store PaymentStore, carts CartSettler, intents payments.IntentCreator) *PaymentController {
	return &PaymentController{store: store, carts: carts, intents: intents}
}

// CreateIntent handles POST /create-payment-intent. Exchanges a price for a
// processor client secret the front end confirms the card against.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price" validate:"required,gt=0"`
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

	secret, err := c.intents.CreateIntent(r.Context(), body.Price)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		logger.WithCtx(r.Context()).Error("payment intent failed", "error", err)
		response.Internal(w, "could not create payment intent")
		return
	}

	metrics.PaymentIntents.WithLabelValues("ok").Inc()
	response.JSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

// History handles GET /payment?email=. Owner-scoped.
func (c *PaymentController) History(w http.ResponseWriter, r *http.Request) {
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

	history, err := c.store.ByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment history failed", "error", err)
		response.Internal(w, "could not load payments")
		return
	}
	if history == nil {
		history = []models.Payment{}
	}
	response.JSON(w, http.StatusOK, history)
}

// Settle handles POST /payment. Records the completed payment, then clears
// the settled cart entries. The cart delete only runs after the insert is
// acknowledged, so a failed insert never drops a user's cart.
func (c *PaymentController) Settle(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.EmailFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		Email         string   `json:"email"         validate:"required,email"`
		Price         float64  `json:"price"         validate:"required,gt=0"`
		TransactionID string   `json:"transactionId" validate:"required"`
		CartIDs       []string `json:"cartIds"       validate:"required"`
		MenuItemIDs   []string `json:"menuItemIds"   validate:"required"`
		Status        string   `json:"status"`
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
	if body.Status == "" {
		body.Status = "pending"
	}

	id, err := c.store.Insert(r.Context(), models.Payment{
		Email:         body.Email,
		Price:         body.Price,
		TransactionID: body.TransactionID,
		CartIDs:       body.CartIDs,
		MenuItemIDs:   body.MenuItemIDs,
		Status:        body.Status,
		Date:          time.Now().UTC(),
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment insert failed", "error", err)
		response.Internal(w, "could not record payment")
		return
	}

	deleted, err := c.carts.DeleteSettled(r.Context(), body.Email, body.CartIDs)
	if err != nil {
		// The payment is recorded; report the partial settlement instead of
		// rolling back.
		logger.WithCtx(r.Context()).Error("cart settlement failed", "error", err, "paymentId", id.Hex())
		deleted = 0
	}

	metrics.PaymentsSettled.Inc()
	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId":   id,
		"deletedCount": deleted,
	})
}
