package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/amrkal/moringa-backend/configs"
	"github.com/amrkal/moringa-backend/middlewares"
	"github.com/amrkal/moringa-backend/routes"
)

func main() {
	cfg := configs.LoadConfig()

	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedSettings(); err != nil {
		log.Fatalf("seed settings failed: %v", err)
	}

	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
