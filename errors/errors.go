package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Booking errors
	ErrCodeRoomUnavailable  ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeInvalidInterval  ErrorCode = "INVALID_INTERVAL"
	ErrCodeSlotConflict     ErrorCode = "SLOT_CONFLICT"
	ErrCodeBookingState     ErrorCode = "INVALID_BOOKING_STATE"

	// Discount / loyalty errors
	ErrCodeVoucherUsed        ErrorCode = "VOUCHER_USED"
	ErrCodeDuplicateEarn      ErrorCode = "DUPLICATE_EARN"
	ErrCodeDuplicateRedeem    ErrorCode = "DUPLICATE_REDEEM"
	ErrCodeInsufficientPoints ErrorCode = "INSUFFICIENT_POINTS"
	ErrCodeMembershipLevel    ErrorCode = "MEMBERSHIP_LEVEL"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomUnavailable  = errors.New("room not available")
	ErrCapacityExceeded = errors.New("party size exceeds room capacity")
	ErrInvalidInterval  = errors.New("checkin must be before checkout")
	ErrSlotConflict     = errors.New("room already booked for this interval")
	ErrBookingCanceled  = errors.New("booking already canceled")
	ErrBookingConfirmed = errors.New("booking already confirmed")
	ErrRoomTypeMismatch = errors.New("room type does not match booking")

	// Discount errors
	ErrDiscountNotFound = errors.New("discount not found")
	ErrVoucherUsed      = errors.New("voucher already used")

	// Loyalty errors
	ErrUserNotFound       = errors.New("user not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrDuplicateEarn      = errors.New("points already accrued for this booking")
	ErrDuplicateRedeem    = errors.New("reward already redeemed")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrMembershipLevel    = errors.New("membership level does not match")

	// Infrastructure
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IsConflict phân loại lỗi xung đột có thể thử lại với dữ liệu khác (§ xử lý lỗi)
func IsConflict(err error) bool {
	switch {
	case errors.Is(err, ErrSlotConflict),
		errors.Is(err, ErrRoomUnavailable),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrVoucherUsed),
		errors.Is(err, ErrDuplicateEarn),
		errors.Is(err, ErrDuplicateRedeem),
		errors.Is(err, ErrBookingCanceled),
		errors.Is(err, ErrBookingConfirmed):
		return true
	}
	return false
}

// IsNotFound phân loại lỗi không tìm thấy bản ghi
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrDiscountNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRewardNotFound):
		return true
	}
	return false
}
