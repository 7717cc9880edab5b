package services

import (
	"time"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
)

// Overlaps kiểm tra hai khoảng nửa mở [checkin, checkout) có giao nhau không.
// Trả phòng ngày N và nhận phòng ngày N không tính là trùng.
func Overlaps(checkin, checkout, existingCheckin, existingCheckout time.Time) bool {
	return checkin.Before(existingCheckout) && existingCheckin.Before(checkout)
}

// HasConflict kiểm tra khoảng ứng viên với toàn bộ khoảng đã giữ trên phòng.
// excludeBookingID > 0 bỏ qua khoảng của chính đặt phòng đó (dùng khi gia hạn).
func HasConflict(intervals []models.BookedInterval, checkin, checkout time.Time, excludeBookingID uint) bool {
	for _, iv := range intervals {
		if excludeBookingID != 0 && iv.BookingID == excludeBookingID {
			continue
		}
		if Overlaps(checkin, checkout, iv.Checkin, iv.Checkout) {
			return true
		}
	}
	return false
}

// CheckRoomBookable là bước kiểm tra thuần, không trạng thái: gọi được ngoài
// transaction để kiểm tra trước, và gọi lại bên trong transaction để chốt.
func CheckRoomBookable(room *models.Room, checkin, checkout time.Time, partySize int) error {
	if !checkin.Before(checkout) {
		return apperrors.ErrInvalidInterval
	}
	if room.AvailabilityStatus != constants.RoomStatusAvailable {
		return apperrors.ErrRoomUnavailable
	}
	if partySize > room.MaxCount {
		return apperrors.ErrCapacityExceeded
	}
	if HasConflict(room.CurrentBookings, checkin, checkout, 0) {
		return apperrors.ErrSlotConflict
	}
	return nil
}
