package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrkal/moringa-backend/pkg/resp"
	"github.com/amrkal/moringa-backend/services"
	"github.com/amrkal/moringa-backend/utils"
)

type VerificationController struct{ Svc *services.VerificationService }

func NewVerificationController(svc *services.VerificationService) *VerificationController {
	return &VerificationController{Svc: svc}
}

// POST /verification/send
func (h *VerificationController) Send(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.Send(uid, body.PhoneNumber); err != nil {
		if errors.Is(err, services.ErrPhoneRequired) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": true})
}

// POST /verification/verify
func (h *VerificationController) Verify(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
		Code        string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.Verify(uid, body.PhoneNumber, body.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrCodeInvalid),
			errors.Is(err, services.ErrCodeExpired),
			errors.Is(err, services.ErrNoPendingCode):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrTooManyAttempts):
			resp.FailCode(c, http.StatusTooManyRequests, "too_many_attempts", err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"verified": true})
}
