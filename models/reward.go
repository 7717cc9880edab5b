package models

import "time"

// Reward là một ưu đãi trong danh mục đổi điểm, trỏ tới một
// voucher Discount qua VoucherCode.
type Reward struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	MembershipLevel string    `gorm:"not null" json:"membershipLevel"`
	PointsRequired  int64     `gorm:"not null" json:"pointsRequired"`
	VoucherCode     string    `gorm:"not null;unique" json:"voucherCode"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
