package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/enums/orderstatus"
	"github.com/amrkal/moringa-backend/pkg/resp"
	"github.com/amrkal/moringa-backend/services"
	"github.com/amrkal/moringa-backend/utils"
)

type OrderController struct {
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService) *OrderController {
	return &OrderController{Checkout: checkout, Orders: orders}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CheckoutIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := oc.Checkout.Checkout(uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhoneUnverified):
			// the client opens verification and resubmits automatically
			resp.FailCode(c, http.StatusForbidden, "phone_verification_required", err.Error())
		case errors.Is(err, services.ErrAddressRequired),
			errors.Is(err, services.ErrCartEmpty),
			errors.Is(err, services.ErrNoOrderTypes),
			errors.Is(err, services.ErrNoPaymentMethods),
			errors.Is(err, services.ErrOrderTypeDisabled),
			errors.Is(err, services.ErrPaymentMethodDisabled):
			resp.BadRequest(c, err.Error())
		case result != nil:
			// order exists but the processor call failed; client retries
			// against the same order id
			c.JSON(http.StatusBadGateway, gin.H{
				"ok": false, "error": err.Error(),
				"orderId": result.OrderID, "state": result.State,
			})
		default:
			resp.ServerError(c, err)
		}
		return
	}

	resp.Created(c, result)
}

// POST /orders/:id/payment/confirm
func (oc *OrderController) ConfirmPayment(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	order, err := oc.Checkout.ConfirmPayment(uid, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrPaymentNotFound),
			errors.Is(err, services.ErrPaymentNotPending):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPaymentUnsettled):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"id": order.ID, "orderNumber": order.OrderNumber, "total": order.Total})
}

// POST /orders/:id/payment/cancel
func (oc *OrderController) CancelPayment(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	if err := oc.Checkout.CancelPayment(uid, uint(id)); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrPaymentNotFound):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// GET /orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := oc.Orders.ListForUser(uid, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	detail, err := oc.Orders.DetailForUser(uid, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// GET /admin/orders
func (oc *OrderController) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := orderstatus.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		resp.BadRequest(c, "unknown status")
		return
	}

	out, err := oc.Orders.ListAll(status, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/orders/:id
func (oc *OrderController) AdminDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	detail, err := oc.Orders.DetailForAdmin(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// PUT /orders/:id (admin status update)
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var body struct {
		Status orderstatus.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := oc.Orders.UpdateStatus(uint(id), body.Status); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
