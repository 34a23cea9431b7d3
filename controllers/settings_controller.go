package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amrkal/moringa-backend/pkg/resp"
	"github.com/amrkal/moringa-backend/services"
)

type SettingsController struct{ Svc *services.SettingsService }

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{Svc: svc}
}

// GET /settings
func (h *SettingsController) Get(c *gin.Context) {
	s, err := h.Svc.Get()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, s)
}

// PUT /settings (admin)
func (h *SettingsController) Update(c *gin.Context) {
	var in services.UpdateSettingsIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	s, err := h.Svc.Update(&in)
	if err != nil {
		if errors.Is(err, services.ErrBadTaxRate) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, s)
}
