package models

import "time"

// UserVoucher là một voucher cá nhân user đã đổi từ ưu đãi.
// Duy nhất theo (userId, voucherCode).
type UserVoucher struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_user_voucher,unique" json:"userId"`
	RewardID    uint      `gorm:"not null" json:"rewardId"`
	VoucherCode string    `gorm:"not null;index:idx_user_voucher,unique" json:"voucherCode"`
	IsUsed      bool      `gorm:"default:false" json:"isUsed"`
	ExpiryDate  time.Time `json:"expiryDate"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
