package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv nạp biến môi trường từ tệp .env nếu có
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Không thể nạp file .env, sử dụng biến môi trường hệ thống nếu có: %v", err)
	}
}

// GetEnv đọc biến môi trường, trả về fallback nếu chưa đặt
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
