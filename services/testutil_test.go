package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Dton04/deployBEHotel/constants"
	"github.com/Dton04/deployBEHotel/models"
)

// nopLogger nuốt mọi log trong test
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}
func (nopLogger) Debug(format string, v ...interface{}) {}

// newTestDB mở một DB sqlite trong bộ nhớ riêng cho mỗi test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("mở sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.BookedInterval{},
		&models.Booking{},
		&models.AppliedVoucher{},
		&models.Discount{},
		&models.UserDiscount{},
		&models.UserVoucher{},
		&models.LoyaltyTransaction{},
		&models.Reward{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %s: %v", value, err)
	}
	return parsed
}

func createTestRoom(t *testing.T, db *gorm.DB, name string, rentPerDay float64) *models.Room {
	t.Helper()
	room := &models.Room{
		Name:               name,
		MaxCount:           4,
		Beds:               2,
		Baths:              1,
		RentPerDay:         rentPerDay,
		Type:               "Deluxe",
		AvailabilityStatus: constants.RoomStatusAvailable,
	}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("tạo phòng: %v", err)
	}
	return room
}

func createTestUser(t *testing.T, db *gorm.DB, email string, points int64) *models.User {
	t.Helper()
	user := &models.User{
		Name:   "Khách Test",
		Email:  email,
		Points: points,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("tạo user: %v", err)
	}
	return user
}

func newTestBooking(room *models.Room, checkin, checkout time.Time) *models.Booking {
	return &models.Booking{
		RoomID:   room.ID,
		Name:     "Nguyễn Văn A",
		Email:    "guest@example.com",
		Phone:    "0901234567",
		Checkin:  checkin,
		Checkout: checkout,
		Adults:   2,
		RoomType: room.Type,
	}
}
