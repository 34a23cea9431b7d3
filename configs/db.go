package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amrkal/moringa-backend/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Ingredient{}, &entity.Meal{}, &entity.MealIngredient{},
		&entity.Cart{}, &entity.CartItem{}, &entity.CartItemIngredient{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderItemIngredient{},
		&entity.Payment{},
		&entity.Settings{},
		&entity.PhoneVerification{},
		&entity.Review{},
	)
}
