package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"scheduling-app-server/internal/config"
	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env just means they come from
	// the environment itself.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := ensureAdminUser(db); err != nil {
		log.Fatalf("Error seeding admin user: %v", err)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, db, cfg)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server running on port %s", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminUser creates a bootstrap admin account on an empty users table
// so the service is reachable after first start. Credentials come from
// ADMIN_USERNAME / ADMIN_PASSWORD; the password should be rotated right away.
func ensureAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		UserName: envOrDefault("ADMIN_USERNAME", "admin"),
		Role:     models.RoleAdmin,
	}
	if err := admin.SetPassword(envOrDefault("ADMIN_PASSWORD", "changeme123")); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Created bootstrap admin user %q", admin.UserName)
	return nil
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
