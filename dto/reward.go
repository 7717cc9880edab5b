package dto

// RedeemRewardRequest là DTO cho request đổi điểm lấy ưu đãi
type RedeemRewardRequest struct {
	RewardID uint `json:"rewardId" binding:"required"`
}

// CreateRewardRequest là DTO cho request tạo ưu đãi trong danh mục
type CreateRewardRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	MembershipLevel string `json:"membershipLevel" binding:"required"`
	PointsRequired  int64  `json:"pointsRequired" binding:"required"`
	VoucherCode     string `json:"voucherCode" binding:"required"`
}

// BalanceResponse là DTO cho response số dư điểm
type BalanceResponse struct {
	Points          int64  `json:"points"`
	MembershipLevel string `json:"membershipLevel"`
}
