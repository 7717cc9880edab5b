package dto

import (
	"time"

	"github.com/Dton04/deployBEHotel/models"
)

// CreateBookingRequest là DTO cho request đặt phòng
type CreateBookingRequest struct {
	RoomID         uint   `json:"roomid"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Checkin        string `json:"checkin"`  // yyyy-mm-dd
	Checkout       string `json:"checkout"` // yyyy-mm-dd
	Adults         int    `json:"adults"`
	Children       int    `json:"children"`
	RoomType       string `json:"roomType"`
	SpecialRequest string `json:"specialRequest"`
	PaymentMethod  string `json:"paymentMethod"`
	DiningServices string `json:"diningServices"`
	Vouchers       []string `json:"vouchers"`
}

// ToModel chuyển request sang model với ngày đã parse
func (r *CreateBookingRequest) ToModel(checkin, checkout time.Time) *models.Booking {
	return &models.Booking{
		RoomID:         r.RoomID,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Checkin:        checkin,
		Checkout:       checkout,
		Adults:         r.Adults,
		Children:       r.Children,
		RoomType:       r.RoomType,
		SpecialRequest: r.SpecialRequest,
		PaymentMethod:  r.PaymentMethod,
		DiningServices: r.DiningServices,
	}
}

// CancelBookingRequest là DTO cho request hủy đặt phòng
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AssignRoomRequest là DTO cho request gán phòng mới
type AssignRoomRequest struct {
	BookingID uint `json:"bookingId" binding:"required"`
	RoomID    uint `json:"roomId" binding:"required"`
}

// ExtendStayRequest là DTO cho request gia hạn lưu trú
type ExtendStayRequest struct {
	Checkout string `json:"checkout" binding:"required"` // yyyy-mm-dd
}

// UpdateNoteRequest là DTO cho request cập nhật ghi chú
type UpdateNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// UpdatePaymentMethodRequest là DTO cho request đổi phương thức thanh toán
type UpdatePaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// BookingResponse là DTO cho response đặt phòng
type BookingResponse struct {
	ID              uint       `json:"id"`
	RoomID          uint       `json:"roomid"`
	RoomName        string     `json:"roomName,omitempty"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Checkin         time.Time  `json:"checkin"`
	Checkout        time.Time  `json:"checkout"`
	Adults          int        `json:"adults"`
	Children        int        `json:"children"`
	RoomType        string     `json:"roomType"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentMethod"`
	PaymentStatus   string     `json:"paymentStatus"`
	PaymentDeadline *time.Time `json:"paymentDeadline,omitempty"`
	CancelReason    string     `json:"cancelReason,omitempty"`
	VoucherDiscount float64    `json:"voucherDiscount"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ToBookingResponse chuyển model sang DTO response
func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		RoomID:          b.RoomID,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		Checkin:         b.Checkin,
		Checkout:        b.Checkout,
		Adults:          b.Adults,
		Children:        b.Children,
		RoomType:        b.RoomType,
		Status:          b.Status,
		PaymentMethod:   b.PaymentMethod,
		PaymentStatus:   b.PaymentStatus,
		PaymentDeadline: b.PaymentDeadline,
		CancelReason:    b.CancelReason,
		VoucherDiscount: b.VoucherDiscount,
		CreatedAt:       b.CreatedAt,
	}
	if b.Room != nil {
		resp.RoomName = b.Room.Name
	}
	return resp
}
