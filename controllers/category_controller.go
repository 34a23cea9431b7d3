package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/localized"
	"github.com/amrkal/moringa-backend/pkg/resp"
	"github.com/amrkal/moringa-backend/services"
	"github.com/amrkal/moringa-backend/utils"
)

type CategoryController struct{ Svc *services.CategoryService }

func NewCategoryController(svc *services.CategoryService) *CategoryController {
	return &CategoryController{Svc: svc}
}

// GET /categories
func (h *CategoryController) List(c *gin.Context) {
	onlyActive := utils.CurrentRole(c) != "admin"
	items, err := h.Svc.List(onlyActive)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type categoryIn struct {
	Name      localized.Text `json:"name" binding:"required"`
	SortOrder int            `json:"sortOrder"`
	Active    *bool          `json:"active"`
}

// POST /categories (admin)
func (h *CategoryController) Create(c *gin.Context) {
	var in categoryIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cat := entity.Category{Name: in.Name, SortOrder: in.SortOrder, Active: true}
	if in.Active != nil {
		cat.Active = *in.Active
	}
	if err := h.Svc.Create(&cat); err != nil {
		if errors.Is(err, localized.ErrEmpty) {
			resp.BadRequest(c, "name is required")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, cat)
}

// PUT /categories/:id (admin)
func (h *CategoryController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	cat, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "category not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var in categoryIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat.Name = in.Name
	cat.SortOrder = in.SortOrder
	if in.Active != nil {
		cat.Active = *in.Active
	}
	if err := h.Svc.Update(cat); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cat)
}

// DELETE /categories/:id (admin)
func (h *CategoryController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.Svc.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
