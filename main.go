package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Dton04/deployBEHotel/config"
	"github.com/Dton04/deployBEHotel/jobs"
	"github.com/Dton04/deployBEHotel/routes"
	"github.com/Dton04/deployBEHotel/services"
	"github.com/Dton04/deployBEHotel/services/logger"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	l := logger.NewDefaultLogger(logger.InfoLevel)
	loyaltyService := services.NewLoyaltyService(config.DB, l)
	paymentService := services.NewPaymentService(config.DB, loyaltyService, l)

	if err := jobs.InitCronJobs(c, m, paymentService); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	routes.SetupRoutes(router, config.DB, config.RedisClient, m)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
