package models

import "time"

// LoyaltyTransaction là một bút toán điểm thưởng, chỉ ghi thêm.
// Bất biến: tối đa một bút toán type=earn cho mỗi đặt phòng.
type LoyaltyTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	BookingID   *uint     `gorm:"index" json:"bookingId"` // Bắt buộc với type=earn
	Amount      float64   `json:"amount"`
	Points      int64     `gorm:"not null" json:"points"`
	Type        string    `gorm:"default:earn" json:"type"` // earn, redeem, reward_redemption
	Status      string    `gorm:"default:pending" json:"status"`
	Description string    `gorm:"default:Không có mô tả" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
