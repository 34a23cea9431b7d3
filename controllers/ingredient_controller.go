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

type IngredientController struct{ Svc *services.IngredientService }

func NewIngredientController(svc *services.IngredientService) *IngredientController {
	return &IngredientController{Svc: svc}
}

// GET /ingredients lists the modifier catalog customization resolves against.
func (h *IngredientController) List(c *gin.Context) {
	onlyAvailable := utils.CurrentRole(c) != "admin"
	items, err := h.Svc.List(onlyAvailable)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type ingredientIn struct {
	Name      localized.Text `json:"name" binding:"required"`
	Price     int64          `json:"price"`
	Available *bool          `json:"available"`
}

// POST /ingredients (admin)
func (h *IngredientController) Create(c *gin.Context) {
	var in ingredientIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	ing := entity.Ingredient{Name: in.Name, Price: in.Price, Available: true}
	if in.Available != nil {
		ing.Available = *in.Available
	}
	if err := h.Svc.Create(&ing); err != nil {
		if errors.Is(err, localized.ErrEmpty) {
			resp.BadRequest(c, "name is required")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, ing)
}

// PUT /ingredients/:id (admin)
func (h *IngredientController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	ing, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "ingredient not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var in ingredientIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ing.Name = in.Name
	ing.Price = in.Price
	if in.Available != nil {
		ing.Available = *in.Available
	}
	if err := h.Svc.Update(ing); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, ing)
}

// DELETE /ingredients/:id (admin)
func (h *IngredientController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.Svc.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
