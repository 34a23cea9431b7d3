package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/enums/ingredientrole"
	"github.com/amrkal/moringa-backend/pkg/localized"
	"github.com/amrkal/moringa-backend/pkg/resp"
	"github.com/amrkal/moringa-backend/services"
	"github.com/amrkal/moringa-backend/utils"
)

type MealController struct{ Svc *services.MealService }

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{Svc: svc}
}

// GET /meals?categoryId=
func (h *MealController) List(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("categoryId"))
	onlyAvailable := utils.CurrentRole(c) != "admin"

	items, err := h.Svc.List(uint(categoryID), onlyAvailable)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /meals/:id
func (h *MealController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	m, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "meal not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

type mealIn struct {
	Name        localized.Text `json:"name" binding:"required"`
	Description localized.Text `json:"description"`
	Price       int64          `json:"price" binding:"required,min=1"`
	CategoryID  uint           `json:"categoryId" binding:"required"`
	Available   *bool          `json:"available"`
	ImageBase64 string         `json:"imageBase64"`
}

func (h *MealController) applyImage(m *entity.Meal, b64 string) error {
	if b64 == "" {
		return nil
	}
	data, contentType, err := utils.DecodeImageBase64(b64)
	if err != nil {
		return err
	}
	m.Image = data
	m.ImageType = contentType
	m.ImageSize = int64(len(data))
	return nil
}

// POST /meals (admin)
func (h *MealController) Create(c *gin.Context) {
	var in mealIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	m := entity.Meal{
		Name: in.Name, Description: in.Description,
		Price: in.Price, CategoryID: in.CategoryID, Available: true,
	}
	if in.Available != nil {
		m.Available = *in.Available
	}
	if err := h.applyImage(&m, in.ImageBase64); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.Create(&m); err != nil {
		if errors.Is(err, localized.ErrEmpty) {
			resp.BadRequest(c, "name is required")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, m)
}

// PUT /meals/:id (admin)
func (h *MealController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	m, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "meal not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var in mealIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m.Name = in.Name
	m.Description = in.Description
	m.Price = in.Price
	m.CategoryID = in.CategoryID
	if in.Available != nil {
		m.Available = *in.Available
	}
	if err := h.applyImage(m, in.ImageBase64); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.Update(m); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

// DELETE /meals/:id (admin)
func (h *MealController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.Svc.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

type mealIngredientIn struct {
	IngredientID uint                `json:"ingredientId" binding:"required"`
	Role         ingredientrole.Role `json:"role" binding:"required"`
	Removable    bool                `json:"removable"`
	ExtraPrice   int64               `json:"extraPrice"`
	SortOrder    int                 `json:"sortOrder"`
}

// PUT /meals/:id/ingredients (admin) applies the authoring toggles.
func (h *MealController) SetIngredients(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var body struct {
		Ingredients []mealIngredientIn `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	links := make([]entity.MealIngredient, 0, len(body.Ingredients))
	for _, in := range body.Ingredients {
		if !in.Role.Valid() {
			resp.BadRequest(c, "unknown ingredient role")
			return
		}
		switch in.Role {
		case ingredientrole.Default:
			links = append(links, entity.MealIngredient{
				IngredientID: in.IngredientID,
				IsDefault:    true,
				IsOptional:   in.Removable,
				SortOrder:    in.SortOrder,
			})
		case ingredientrole.Extra:
			links = append(links, entity.MealIngredient{
				IngredientID: in.IngredientID,
				IsOptional:   true,
				ExtraPrice:   in.ExtraPrice,
				SortOrder:    in.SortOrder,
			})
		}
		// NotIncluded drops the link
	}

	if err := h.Svc.SetIngredients(uint(id), links); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
