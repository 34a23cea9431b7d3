package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/amrkal/moringa-backend/entity"
)

// SeedAdmin creates the back-office account on first boot.
func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", cfg.AdminEmail)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedSettings makes sure the single settings row exists so totals can be
// computed before anyone touches the admin panel.
func SeedSettings() error {
	db := DB()

	var count int64
	db.Model(&entity.Settings{}).Count(&count)
	if count > 0 {
		return nil
	}

	s := entity.Settings{
		DeliveryFee:    1500, // minor units
		TaxRate:        0.17,
		Currency:       "ils",
		AcceptDelivery: true,
		AcceptDineIn:   true,
		AcceptTakeaway: true,
		AcceptCash:     true,
	}
	return db.Create(&s).Error
}
