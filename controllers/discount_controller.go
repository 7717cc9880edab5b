package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/Dton04/deployBEHotel/dto"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/middleware"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/response"
	"github.com/Dton04/deployBEHotel/services"
)

// DiscountController xử lý các endpoint khuyến mãi
type DiscountController struct {
	discounts *services.DiscountService
}

func NewDiscountController(discounts *services.DiscountService) *DiscountController {
	return &DiscountController{discounts: discounts}
}

// GetDiscounts liệt kê khuyến mãi, lọc theo type nếu có
func (ctl *DiscountController) GetDiscounts(c *gin.Context) {
	discounts, err := ctl.discounts.ListDiscounts(c.Query("type"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, discounts)
}

// GetEligibleDiscounts liệt kê ưu đãi thành viên và tích lũy mà user
// đang đăng nhập đủ điều kiện nhận
func (ctl *DiscountController) GetEligibleDiscounts(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	discounts, err := ctl.discounts.ListEligibleForUser(userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, discounts)
}

// PreviewDiscount tính thử kết quả áp khuyến mãi, không ghi gì
func (ctl *DiscountController) PreviewDiscount(c *gin.Context) {
	var req dto.PreviewDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	checkin, err := parseDate(req.Checkin)
	if err != nil {
		response.BadRequest(c, "Ngày nhận phòng không hợp lệ")
		return
	}
	checkout, err := parseDate(req.Checkout)
	if err != nil {
		response.BadRequest(c, "Ngày trả phòng không hợp lệ")
		return
	}

	userID := middleware.UserIDFromContext(c)
	result, err := ctl.discounts.Preview(req.RoomID, userID, checkin, checkout, req.Vouchers)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// ApplyDiscount áp khuyến mãi lên một đặt phòng đã tạo
func (ctl *DiscountController) ApplyDiscount(c *gin.Context) {
	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	userID := middleware.UserIDFromContext(c)
	result, err := ctl.discounts.ApplyToBooking(req.BookingID, userID, req.Vouchers)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// CreateDiscount tạo khuyến mãi mới
func (ctl *DiscountController) CreateDiscount(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	discount, err := ctl.toModel(&req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if err := ctl.discounts.CreateDiscount(discount); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, discount)
}

// UpdateDiscount cập nhật khuyến mãi
func (ctl *DiscountController) UpdateDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	update, err := ctl.toModel(&req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	discount, err := ctl.discounts.UpdateDiscount(id, update)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, discount)
}

// DeleteDiscount xóa mềm một khuyến mãi
func (ctl *DiscountController) DeleteDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctl.discounts.DeleteDiscount(id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

func (ctl *DiscountController) toModel(req *dto.CreateDiscountRequest) (*models.Discount, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Ngày bắt đầu không hợp lệ", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Ngày kết thúc không hợp lệ", err)
	}

	// Hết hạn cuối ngày kết thúc
	endDate = endDate.Add(24*time.Hour - time.Second)

	return &models.Discount{
		Name:             req.Name,
		Code:             req.Code,
		Description:      req.Description,
		Type:             req.Type,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		ApplicableRooms:  pq.Int64Array(req.ApplicableRooms),
		StartDate:        startDate,
		EndDate:          endDate,
		MinBookingAmount: req.MinBookingAmount,
		MaxDiscount:      req.MaxDiscount,
		IsStackable:      req.IsStackable,
		MembershipLevel:  req.MembershipLevel,
		MinSpending:      req.MinSpending,
	}, nil
}
