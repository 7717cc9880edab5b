package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"default:New User" json:"name"`
	Email     string    `gorm:"unique" json:"email"`
	Phone     string    `gorm:"type:varchar(11)" json:"phone"`
	Avatar    string    `json:"avatar"`
	Role      int       `gorm:"default:0" json:"role"`
	Points    int64     `gorm:"default:0" json:"points"` // Điểm tích lũy, không âm
	IsDeleted bool      `gorm:"default:false" json:"isDeleted"`
	Vouchers  []UserVoucher `gorm:"foreignKey:UserID" json:"vouchers,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
