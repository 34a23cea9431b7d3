package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/resp"
	"github.com/amrkal/moringa-backend/services"
	"github.com/amrkal/moringa-backend/utils"
)

type PaymentController struct {
	Checkout *services.CheckoutService
	Payments *services.PaymentService
}

func NewPaymentController(checkout *services.CheckoutService, payments *services.PaymentService) *PaymentController {
	return &PaymentController{Checkout: checkout, Payments: payments}
}

// GET /payments/config
func (pc *PaymentController) Config(c *gin.Context) {
	resp.OK(c, gin.H{"publishableKey": pc.Payments.PublishableKey})
}

// POST /payments/create-payment-intent
// Re-issues the client secret for an order's pending card payment; used for
// retries after a failed or cancelled attempt. Never duplicates an intent.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	secret, err := pc.Checkout.RetryCardIntent(uid, body.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrPaymentNotFound),
			errors.Is(err, services.ErrPaymentMethodMismatch):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"clientSecret": secret})
}

// POST /payments/retry-wallet-push
// Re-triggers the push prompt for a mobile-money order after a failed
// attempt; an outstanding push is reused, never duplicated.
func (pc *PaymentController) RetryWalletPush(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := pc.Checkout.RetryWalletPush(uid, body.OrderID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrPaymentNotFound),
			errors.Is(err, services.ErrPaymentMethodMismatch):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
