package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/pkg/localized"
	"github.com/amrkal/moringa-backend/repository"
)

// newTestDB opens a fresh in-memory sqlite database named after the test so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Ingredient{},
		&entity.Meal{},
		&entity.MealIngredient{},
		&entity.Cart{},
		&entity.CartItem{},
		&entity.CartItemIngredient{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderItemIngredient{},
		&entity.Payment{},
		&entity.Settings{},
		&entity.PhoneVerification{},
		&entity.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, verified bool) *entity.User {
	t.Helper()
	u := entity.User{
		Email:       fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-"))),
		FirstName:   "Test",
		PhoneNumber: "0501234567",
		Role:        "customer",
	}
	if verified {
		at := time.Now().Add(-time.Hour)
		u.PhoneVerifiedAt = &at
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedSettings(t *testing.T, db *gorm.DB, s entity.Settings) *entity.Settings {
	t.Helper()
	require.NoError(t, db.Create(&s).Error)
	return &s
}

// seedMeal creates a 4500 shawarma with onion (removable default), pickles
// (non-removable default), tahini (extra, 300) and feta (extra, 700), and
// returns it with the link ids resolved.
func seedMeal(t *testing.T, db *gorm.DB) (*entity.Meal, map[string]uint) {
	t.Helper()

	ings := map[string]*entity.Ingredient{
		"onion":   {Name: localized.FromString("Onion"), Price: 200, Available: true},
		"pickles": {Name: localized.FromString("Pickles"), Price: 150, Available: true},
		"tahini":  {Name: localized.FromString("Tahini"), Price: 300, Available: true},
		"feta":    {Name: localized.FromString("Feta"), Price: 700, Available: true},
	}
	for _, ing := range ings {
		require.NoError(t, db.Create(ing).Error)
	}

	m := entity.Meal{
		Name:      localized.Text{En: "Shawarma", Ar: "شاورما", He: "שווארמה"},
		Price:     4500,
		Available: true,
	}
	require.NoError(t, db.Create(&m).Error)

	links := []entity.MealIngredient{
		{MealID: m.ID, IngredientID: ings["onion"].ID, IsDefault: true, IsOptional: true},
		{MealID: m.ID, IngredientID: ings["pickles"].ID, IsDefault: true, IsOptional: false},
		{MealID: m.ID, IngredientID: ings["tahini"].ID, ExtraPrice: 300},
		{MealID: m.ID, IngredientID: ings["feta"].ID, ExtraPrice: 700},
	}
	for i := range links {
		require.NoError(t, db.Create(&links[i]).Error)
	}

	ids := make(map[string]uint, len(ings))
	for k, ing := range ings {
		ids[k] = ing.ID
	}

	mr := repository.NewMealRepository(db)
	loaded, err := mr.FindByID(m.ID)
	require.NoError(t, err)
	return loaded, ids
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db,
		repository.NewCartRepository(db),
		repository.NewMealRepository(db),
		repository.NewIngredientRepository(db),
	)
}
