package models

import (
	"fmt"
	"time"

	"github.com/Dton04/deployBEHotel/constants"
)

type Room struct {
	ID                 uint             `json:"id" gorm:"primaryKey"`
	Name               string           `json:"name"`
	MaxCount           int              `json:"maxcount"`
	Beds               int              `json:"beds"`
	Baths              int              `json:"baths"`
	PhoneNumber        string           `json:"phonenumber"`
	RentPerDay         float64          `json:"rentperday"`
	Type               string           `json:"type"`
	Description        string           `json:"description"`
	HotelID            *uint            `json:"hotelId"`
	AvailabilityStatus string           `json:"availabilityStatus" gorm:"default:available"`
	Version            int64            `json:"-" gorm:"default:0"` // Chốt phiên bản cho cập nhật danh sách đặt phòng
	CurrentBookings    []BookedInterval `json:"currentbookings" gorm:"foreignKey:RoomID"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BookedInterval là một khoảng [checkin, checkout) đã giữ trên phòng
type BookedInterval struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RoomID    uint      `json:"roomId" gorm:"index"`
	BookingID uint      `json:"bookingId" gorm:"index"`
	Checkin   time.Time `json:"checkin"`
	Checkout  time.Time `json:"checkout"`
}

func (r *Room) ValidateStatus() error {
	switch r.AvailabilityStatus {
	case constants.RoomStatusAvailable, constants.RoomStatusMaintenance, constants.RoomStatusBusy:
		return nil
	}
	return fmt.Errorf("invalid availability status: %q", r.AvailabilityStatus)
}
