package dto

// CreatePaymentIntentRequest là DTO cho request tạo yêu cầu thanh toán
type CreatePaymentIntentRequest struct {
	BookingID uint   `json:"bookingId" binding:"required"`
	OrderID   string `json:"orderId" binding:"required"`
	RequestID string `json:"requestId"`
}

// GatewayCallbackRequest là DTO cho callback từ cổng thanh toán
type GatewayCallbackRequest struct {
	OrderID       string `json:"orderId" binding:"required"`
	RequestID     string `json:"requestId"`
	TransactionID string `json:"transId"`
	ResultCode    int    `json:"resultCode"`
	Message       string `json:"message"`
}
