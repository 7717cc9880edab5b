package validator

import (
	"regexp"
	"time"

	"github.com/Dton04/deployBEHotel/dto"
	"github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
)

// ValidateBookingRequest validate dữ liệu đặt phòng từ client
func ValidateBookingRequest(req *dto.CreateBookingRequest) error {
	if req.RoomID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID phòng không được để trống", nil)
	}

	if req.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên khách không được để trống", nil)
	}

	if req.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email không được để trống", nil)
	}

	if !isValidEmail(req.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Email không hợp lệ", nil)
	}

	if req.Phone != "" && !isValidPhone(req.Phone) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Số điện thoại không hợp lệ", nil)
	}

	checkin, err := time.Parse("2006-01-02", req.Checkin)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày nhận phòng không hợp lệ", err)
	}

	checkout, err := time.Parse("2006-01-02", req.Checkout)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày trả phòng không hợp lệ", err)
	}

	if !checkin.Before(checkout) {
		return errors.NewAppError(errors.ErrCodeInvalidInterval, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	if req.Adults < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Phải có ít nhất một người lớn", nil)
	}

	if req.Children < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số trẻ em không được âm", nil)
	}

	return nil
}

// ValidateRoom validate thông tin phòng
func ValidateRoom(room *models.Room) error {
	if room.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên phòng không được để trống", nil)
	}

	if room.Type == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Loại phòng không được để trống", nil)
	}

	if room.MaxCount < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Sức chứa phòng phải ít nhất 1", nil)
	}

	if room.RentPerDay < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá phòng không được âm", nil)
	}

	if room.PhoneNumber != "" && !isValidPhone(room.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Số điện thoại phòng không hợp lệ", nil)
	}

	return room.ValidateStatus()
}

// ValidateEmail kiểm tra email hợp lệ
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Email không hợp lệ", nil)
	}
	return nil
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10,11}$`)
	return phoneRegex.MatchString(phone)
}
