package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
)

type Discount struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	Name            string        `json:"name"`
	Code            *string       `json:"code" gorm:"uniqueIndex"` // Chỉ dùng cho loại voucher
	Description     string        `json:"description"`
	Type            string        `json:"type"`         // voucher, festival, member, accumulated
	DiscountType    string        `json:"discountType"` // percentage, fixed
	DiscountValue   float64       `json:"discountValue"`
	ApplicableRooms pq.Int64Array `json:"applicableRooms" gorm:"type:integer[]"` // Rỗng = áp dụng mọi phòng
	StartDate       time.Time     `json:"startDate"`
	EndDate         time.Time     `json:"endDate"`
	MinBookingAmount float64      `json:"minBookingAmount" gorm:"default:0"`
	MaxDiscount     *float64      `json:"maxDiscount"`
	IsStackable     bool          `json:"isStackable" gorm:"default:false"`
	MembershipLevel *string       `json:"membershipLevel"` // Chỉ dùng cho loại member
	MinSpending     *float64      `json:"minSpending"`     // Chỉ dùng cho loại accumulated
	UsedBy          []UserDiscount `json:"usedBy" gorm:"foreignKey:DiscountID"`
	IsDeleted       bool          `json:"isDeleted" gorm:"default:false"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AppliesToRoom kiểm tra phạm vi phòng của khuyến mãi
func (d *Discount) AppliesToRoom(roomID uint) bool {
	if len(d.ApplicableRooms) == 0 {
		return true
	}
	for _, id := range d.ApplicableRooms {
		if uint(id) == roomID {
			return true
		}
	}
	return false
}

// ActiveAt kiểm tra khuyến mãi còn trong cửa sổ hiệu lực [startDate, endDate]
func (d *Discount) ActiveAt(now time.Time) bool {
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// Amount tính số tiền giảm trên tổng tiền đặt phòng
func (d *Discount) Amount(bookingAmount float64) float64 {
	if d.DiscountType == constants.DiscountValuePercentage {
		amount := bookingAmount * d.DiscountValue / 100
		if d.MaxDiscount != nil && amount > *d.MaxDiscount {
			amount = *d.MaxDiscount
		}
		return amount
	}
	return d.DiscountValue
}

// Validate kiểm tra bất biến của khuyến mãi: đúng một trường đặc thù
// theo type (code / membershipLevel / minSpending) được gán.
func (d *Discount) Validate() error {
	switch d.Type {
	case constants.DiscountTypeVoucher, constants.DiscountTypeFestival,
		constants.DiscountTypeMember, constants.DiscountTypeAccumulated:
	default:
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Loại khuyến mãi không hợp lệ", nil)
	}

	switch d.DiscountType {
	case constants.DiscountValuePercentage, constants.DiscountValueFixed:
	default:
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Loại giảm giá không hợp lệ", nil)
	}

	if d.DiscountValue < 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "Giá trị giảm giá không thể âm", nil)
	}

	if !d.EndDate.After(d.StartDate) {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}

	if d.Type == constants.DiscountTypeVoucher {
		if d.Code == nil || *d.Code == "" {
			return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Mã voucher là bắt buộc cho loại voucher", nil)
		}
	} else if d.Code != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Mã code chỉ được cung cấp cho loại voucher", nil)
	}

	if d.Type == constants.DiscountTypeMember {
		if d.MembershipLevel == nil || !ValidMembershipLevel(*d.MembershipLevel) {
			return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cấp độ thành viên không hợp lệ hoặc thiếu", nil)
		}
	} else if d.MembershipLevel != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cấp độ thành viên chỉ được cung cấp cho loại member", nil)
	}

	if d.Type == constants.DiscountTypeAccumulated {
		if d.MinSpending == nil || *d.MinSpending < 0 {
			return apperrors.NewAppError(apperrors.ErrCodeValidation, "Chi tiêu tối thiểu không hợp lệ hoặc thiếu", nil)
		}
	} else if d.MinSpending != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Chi tiêu tối thiểu chỉ được cung cấp cho loại accumulated", nil)
	}

	return nil
}

// UserDiscount đếm số lần một user đã dùng một khuyến mãi.
// Chỉ tăng, không bao giờ giảm.
type UserDiscount struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_user_discount,unique" json:"userId"`
	DiscountID uint      `gorm:"not null;index:idx_user_discount,unique" json:"discountId"`
	UsageCount int       `gorm:"default:0" json:"usageCount"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
