package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Dton04/deployBEHotel/dto"
	"github.com/Dton04/deployBEHotel/middleware"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/response"
	"github.com/Dton04/deployBEHotel/services"
)

// RewardController xử lý các endpoint điểm thưởng và đổi ưu đãi
type RewardController struct {
	loyalty *services.LoyaltyService
}

func NewRewardController(loyalty *services.LoyaltyService) *RewardController {
	return &RewardController{loyalty: loyalty}
}

// GetBalance trả về điểm và cấp độ thành viên của user đang đăng nhập
func (ctl *RewardController) GetBalance(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	points, level, err := ctl.loyalty.Balance(userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, dto.BalanceResponse{Points: points, MembershipLevel: level})
}

// GetHistory trả về sổ bút toán điểm của user đang đăng nhập
func (ctl *RewardController) GetHistory(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	entries, err := ctl.loyalty.History(userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, entries)
}

// GetRewards liệt kê ưu đãi đúng cấp độ của user đang đăng nhập
func (ctl *RewardController) GetRewards(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	rewards, err := ctl.loyalty.RewardsFor(userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, rewards)
}

// RedeemReward đổi điểm lấy voucher ưu đãi
func (ctl *RewardController) RedeemReward(c *gin.Context) {
	var req dto.RedeemRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	userID := middleware.UserIDFromContext(c)
	voucher, err := ctl.loyalty.Redeem(userID, req.RewardID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, voucher)
}

// AccruePoints tích điểm tay cho một đặt phòng đã xác nhận (checkout)
func (ctl *RewardController) AccruePoints(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := ctl.loyalty.Accrue(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, entry)
}

// CreateReward thêm ưu đãi vào danh mục (admin)
func (ctl *RewardController) CreateReward(c *gin.Context) {
	var req dto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if !models.ValidMembershipLevel(req.MembershipLevel) {
		response.BadRequest(c, "Cấp độ thành viên không hợp lệ")
		return
	}

	reward := models.Reward{
		Name:            req.Name,
		Description:     req.Description,
		MembershipLevel: req.MembershipLevel,
		PointsRequired:  req.PointsRequired,
		VoucherCode:     req.VoucherCode,
	}
	if err := ctl.loyalty.CreateReward(&reward); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, reward)
}

// UpdateReward cập nhật một ưu đãi trong danh mục (admin)
func (ctl *RewardController) UpdateReward(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reward, err := ctl.loyalty.UpdateReward(id, &models.Reward{
		Name:            req.Name,
		Description:     req.Description,
		MembershipLevel: req.MembershipLevel,
		PointsRequired:  req.PointsRequired,
		VoucherCode:     req.VoucherCode,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, reward)
}

// DeleteReward gỡ ưu đãi khỏi danh mục (admin)
func (ctl *RewardController) DeleteReward(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctl.loyalty.DeleteReward(id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetVouchers liệt kê voucher của user đang đăng nhập
func (ctl *RewardController) GetVouchers(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	onlyUnused := c.Query("unused") == "true"
	vouchers, err := ctl.loyalty.Vouchers(userID, onlyUnused)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, vouchers)
}

// GetAllRewards liệt kê toàn bộ danh mục ưu đãi (admin)
func (ctl *RewardController) GetAllRewards(c *gin.Context) {
	rewards, err := ctl.loyalty.ListRewards()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, rewards)
}
