package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/Dton04/deployBEHotel/dto"
	"github.com/Dton04/deployBEHotel/middleware"
	"github.com/Dton04/deployBEHotel/response"
	"github.com/Dton04/deployBEHotel/services"
	"github.com/Dton04/deployBEHotel/validator"
)

// BookingController xử lý các endpoint đặt phòng
type BookingController struct {
	bookings  *services.BookingService
	discounts *services.DiscountService
	payments  *services.PaymentService
	ws        *melody.Melody
}

func NewBookingController(bookings *services.BookingService, discounts *services.DiscountService, payments *services.PaymentService, ws *melody.Melody) *BookingController {
	return &BookingController{bookings: bookings, discounts: discounts, payments: payments, ws: ws}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(value string) (int, error) {
	return strconv.Atoi(value)
}

// CreateBooking tạo đặt phòng mới, áp voucher kèm theo nếu có
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateBookingRequest(&req); err != nil {
		response.HandleError(c, err)
		return
	}

	checkin, _ := parseDate(req.Checkin)
	checkout, _ := parseDate(req.Checkout)

	booking := req.ToModel(checkin, checkout)
	if err := ctl.bookings.CreateBooking(booking); err != nil {
		response.HandleError(c, err)
		return
	}

	if len(req.Vouchers) > 0 {
		userID := middleware.UserIDFromContext(c)
		if _, err := ctl.discounts.ApplyToBooking(booking.ID, userID, req.Vouchers); err != nil {
			response.HandleError(c, err)
			return
		}
	}

	created, err := ctl.bookings.GetByID(booking.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	BroadcastBookingEvent(ctl.ws, "booking_created", created)
	response.Success(c, dto.ToBookingResponse(created))
}

// GetAllBookings liệt kê đặt phòng, lọc theo trạng thái nếu có (admin)
func (ctl *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := ctl.bookings.List(c.Query("status"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, dto.ToBookingResponse(&bookings[i]))
	}
	response.Success(c, result)
}

// GetBookingsByRoom liệt kê đặt phòng của một phòng
func (ctl *BookingController) GetBookingsByRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	bookings, err := ctl.bookings.ListByRoom(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, bookings)
}

// GetBookingHistory liệt kê lịch sử đặt phòng theo email khách
func (ctl *BookingController) GetBookingHistory(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "Thiếu email")
		return
	}

	bookings, err := ctl.bookings.HistoryByEmail(email)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, dto.ToBookingResponse(&bookings[i]))
	}
	response.Success(c, result)
}

// GetBooking trả về chi tiết đặt phòng, trạng thái phản ánh hạn thanh toán
func (ctl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Kiểm tra hạn chuyển khoản trước khi trả trạng thái
	if _, err := ctl.payments.CheckPaymentDeadline(id); err != nil {
		response.HandleError(c, err)
		return
	}

	booking, err := ctl.bookings.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(booking))
}

// CancelBooking hủy đặt phòng đang chờ
func (ctl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Lý do hủy không được để trống")
		return
	}

	booking, err := ctl.bookings.CancelBooking(id, req.Reason)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	BroadcastBookingEvent(ctl.ws, "booking_canceled", booking)
	response.Success(c, dto.ToBookingResponse(booking))
}

// AssignRoom chuyển đặt phòng sang phòng khác cùng loại
func (ctl *BookingController) AssignRoom(c *gin.Context) {
	var req dto.AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := ctl.bookings.AssignRoom(req.BookingID, req.RoomID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(booking))
}

// ExtendStay gia hạn ngày trả phòng
func (ctl *BookingController) ExtendStay(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ExtendStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	newCheckout, err := parseDate(req.Checkout)
	if err != nil {
		response.BadRequest(c, "Ngày trả phòng không hợp lệ")
		return
	}

	booking, err := ctl.bookings.ExtendStay(id, newCheckout)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(booking))
}

// UpdateNote cập nhật ghi chú của đặt phòng
func (ctl *BookingController) UpdateNote(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Ghi chú không được để trống")
		return
	}

	booking, err := ctl.bookings.UpdateNote(id, req.Note)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(booking))
}

// UpdatePaymentMethod đổi phương thức thanh toán của đặt phòng
func (ctl *BookingController) UpdatePaymentMethod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := ctl.bookings.UpdatePaymentMethod(id, req.PaymentMethod)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(booking))
}

// ValidateBooking kiểm tra phòng còn nhận được đặt phòng không, không ghi gì
func (ctl *BookingController) ValidateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateBookingRequest(&req); err != nil {
		response.HandleError(c, err)
		return
	}

	checkin, _ := parseDate(req.Checkin)
	checkout, _ := parseDate(req.Checkout)

	if err := ctl.bookings.Validate(req.RoomID, req.RoomType, checkin, checkout, req.Adults, req.Children); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"bookable": true})
}
