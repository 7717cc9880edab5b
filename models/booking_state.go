package models

import (
	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
)

// BookingState định nghĩa interface cho các trạng thái đặt phòng.
// Pending là trạng thái khởi tạo; Confirmed và Canceled là trạng thái kết thúc.
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking, reason string) error
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = constants.BookingStatusConfirmed
	booking.PaymentStatus = constants.PaymentStatusPaid
	return nil
}

func (s *PendingState) Cancel(booking *Booking, reason string) error {
	booking.Status = constants.BookingStatusCanceled
	booking.PaymentStatus = constants.PaymentStatusCanceled
	booking.CancelReason = reason
	return nil
}

// ConfirmedState trạng thái đã xác nhận (kết thúc)
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return apperrors.ErrBookingConfirmed
}

func (s *ConfirmedState) Cancel(booking *Booking, reason string) error {
	return apperrors.ErrBookingConfirmed
}

// CanceledState trạng thái đã hủy (kết thúc)
type CanceledState struct{}

func (s *CanceledState) Confirm(booking *Booking) error {
	return apperrors.ErrBookingCanceled
}

func (s *CanceledState) Cancel(booking *Booking, reason string) error {
	return apperrors.ErrBookingCanceled
}

// GetBookingState trả về state tương ứng với trạng thái đặt phòng
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	case constants.BookingStatusCanceled:
		return &CanceledState{}
	default:
		return &PendingState{}
	}
}
