package models

import (
	"time"
)

type Booking struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	RoomID         uint       `json:"roomid" gorm:"index"`
	Room           *Room      `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Name           string     `json:"name"`
	Email          string     `json:"email" gorm:"index"`
	Phone          string     `json:"phone"`
	Checkin        time.Time  `json:"checkin"`
	Checkout       time.Time  `json:"checkout"`
	Adults         int        `json:"adults"`
	Children       int        `json:"children" gorm:"default:0"`
	RoomType       string     `json:"roomType"`
	SpecialRequest string     `json:"specialRequest"`
	Status         string     `json:"status" gorm:"default:pending;index"`
	PaymentMethod  string     `json:"paymentMethod"`
	PaymentStatus  string     `json:"paymentStatus" gorm:"default:pending"`
	PaymentDeadline *time.Time `json:"paymentDeadline"` // Thời gian hết hạn thanh toán (chỉ bank_transfer)
	CancelReason   string     `json:"cancelReason"`
	VoucherDiscount float64   `json:"voucherDiscount" gorm:"default:0"` // Tổng tiền giảm từ voucher
	AppliedVouchers []AppliedVoucher `json:"appliedVouchers" gorm:"foreignKey:BookingID"`
	DiningServices  string    `json:"diningServices"`

	// Thông tin đối soát với cổng thanh toán
	GatewayOrderID       string `json:"gatewayOrderId"`
	GatewayRequestID     string `json:"gatewayRequestId"`
	GatewayTransactionID string `json:"gatewayTransactionId"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AppliedVoucher là một khuyến mãi đã được ghi lên đặt phòng
type AppliedVoucher struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	BookingID uint    `json:"bookingId" gorm:"index"`
	Code      string  `json:"code"`
	Amount    float64 `json:"discount"`
}

// Nights tính số đêm lưu trú, làm tròn lên theo ngày
func (b *Booking) Nights() int {
	nights := int(b.Checkout.Sub(b.Checkin).Hours() / 24)
	if b.Checkout.Sub(b.Checkin)%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}
