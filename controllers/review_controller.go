package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/pkg/resp"
	"github.com/amrkal/moringa-backend/services"
	"github.com/amrkal/moringa-backend/utils"
)

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: svc}
}

// POST /reviews
func (h *ReviewController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		OrderID uint   `json:"orderId" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rv, err := h.Svc.Create(uid, body.OrderID, body.Rating, body.Comment)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrBadRating),
			errors.Is(err, services.ErrOrderNotReviewed):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAlreadyReviewed):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, rv)
}

// GET /reviews
func (h *ReviewController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.Svc.List(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// DELETE /reviews/:id (admin)
func (h *ReviewController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.Svc.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
