package dto

// ApplyDiscountRequest là DTO cho request áp khuyến mãi lên đặt phòng
type ApplyDiscountRequest struct {
	BookingID uint     `json:"bookingId"`
	Vouchers  []string `json:"vouchers" binding:"required"`
}

// PreviewDiscountRequest là DTO cho request xem trước khuyến mãi
type PreviewDiscountRequest struct {
	RoomID   uint     `json:"roomId" binding:"required"`
	Checkin  string   `json:"checkin" binding:"required"`  // yyyy-mm-dd
	Checkout string   `json:"checkout" binding:"required"` // yyyy-mm-dd
	Vouchers []string `json:"vouchers" binding:"required"`
}

// CreateDiscountRequest là DTO cho request tạo khuyến mãi
type CreateDiscountRequest struct {
	Name             string   `json:"name" binding:"required"`
	Code             *string  `json:"code"`
	Description      string   `json:"description"`
	Type             string   `json:"type" binding:"required"`
	DiscountType     string   `json:"discountType" binding:"required"`
	DiscountValue    float64  `json:"discountValue"`
	ApplicableRooms  []int64  `json:"applicableRooms"`
	StartDate        string   `json:"startDate" binding:"required"` // yyyy-mm-dd
	EndDate          string   `json:"endDate" binding:"required"`   // yyyy-mm-dd
	MinBookingAmount float64  `json:"minBookingAmount"`
	MaxDiscount      *float64 `json:"maxDiscount"`
	IsStackable      bool     `json:"isStackable"`
	MembershipLevel  *string  `json:"membershipLevel"`
	MinSpending      *float64 `json:"minSpending"`
}
