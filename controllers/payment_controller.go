package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/Dton04/deployBEHotel/dto"
	"github.com/Dton04/deployBEHotel/response"
	"github.com/Dton04/deployBEHotel/services"
)

// PaymentController xử lý các endpoint thanh toán
type PaymentController struct {
	payments *services.PaymentService
	ws       *melody.Melody
}

func NewPaymentController(payments *services.PaymentService, ws *melody.Melody) *PaymentController {
	return &PaymentController{payments: payments, ws: ws}
}

// ConfirmPayment xác nhận thanh toán tay cho một đặt phòng (lễ tân thu tiền mặt)
func (ctl *PaymentController) ConfirmPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctl.payments.ConfirmPayment(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	BroadcastBookingEvent(ctl.ws, "payment_confirmed", booking)
	response.Success(c, dto.ToBookingResponse(booking))
}

// CreatePaymentIntent gắn mã đối soát cổng thanh toán lên đặt phòng
func (ctl *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var req dto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := ctl.payments.CreatePaymentIntent(req.BookingID, req.OrderID, req.RequestID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(booking))
}

// GatewayCallback nhận kết quả từ cổng thanh toán, chịu được gửi trùng
func (ctl *PaymentController) GatewayCallback(c *gin.Context) {
	var req dto.GatewayCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := ctl.payments.HandleGatewayCallback(services.GatewayEvent{
		OrderID:       req.OrderID,
		RequestID:     req.RequestID,
		TransactionID: req.TransactionID,
		ResultCode:    req.ResultCode,
		Message:       req.Message,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	BroadcastBookingEvent(ctl.ws, "payment_updated", booking)
	response.Success(c, dto.ToBookingResponse(booking))
}

// CheckPaymentDeadline trả về trạng thái thanh toán hiện tại, đặt phòng
// chuyển khoản quá hạn bị hủy ngay tại lượt đọc này.
func (ctl *PaymentController) CheckPaymentDeadline(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctl.payments.CheckPaymentDeadline(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(booking))
}
