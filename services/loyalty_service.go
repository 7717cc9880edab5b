package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/services/logger"
)

// Tỷ lệ quy đổi tiền sang điểm: 1 điểm cho mỗi 100 đơn vị tiền
const pointsRate = 0.01

// LoyaltyService quản lý sổ điểm thưởng: tích điểm khi đặt phòng hoàn tất
// và đổi điểm lấy voucher ưu đãi.
type LoyaltyService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewLoyaltyService(db *gorm.DB, l logger.Logger) *LoyaltyService {
	return &LoyaltyService{db: db, logger: l}
}

// PointsFor quy đổi số tiền thành điểm, làm tròn xuống
func PointsFor(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(math.Floor(amount * pointsRate))
}

// AccrueTx tích điểm cho một đặt phòng bên trong transaction có sẵn.
// Mỗi đặt phòng chỉ tích một lần: nếu đã có bút toán earn thì trả
// ErrDuplicateEarn, người gọi quyết định coi đó là no-op hay xung đột.
func (s *LoyaltyService) AccrueTx(tx *gorm.DB, booking *models.Booking) (*models.LoyaltyTransaction, error) {
	email := strings.ToLower(strings.TrimSpace(booking.Email))
	var user models.User
	if err := tx.Where("LOWER(email) = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	var existing models.LoyaltyTransaction
	err := tx.Where("booking_id = ? AND type = ?", booking.ID, constants.TransactionTypeEarn).
		First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateEarn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var room models.Room
	if err := tx.First(&room, booking.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, err
	}

	amount := room.RentPerDay*float64(booking.Nights()) - booking.VoucherDiscount
	if amount < 0 {
		amount = 0
	}
	points := PointsFor(amount)

	bookingID := booking.ID
	entry := models.LoyaltyTransaction{
		UserID:      user.ID,
		BookingID:   &bookingID,
		Amount:      amount,
		Points:      points,
		Type:        constants.TransactionTypeEarn,
		Status:      constants.TransactionStatusCompleted,
		Description: fmt.Sprintf("Tích điểm cho đặt phòng #%d", booking.ID),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update("points", gorm.Expr("points + ?", points)).Error; err != nil {
		return nil, err
	}

	s.logger.Info("Tích %d điểm cho user %d từ đặt phòng %d", points, user.ID, booking.ID)
	return &entry, nil
}

// Accrue tích điểm cho một đặt phòng đã xác nhận, gọi từ endpoint checkout.
// Gọi lại cho cùng một đặt phòng trả ErrDuplicateEarn.
func (s *LoyaltyService) Accrue(bookingID uint) (*models.LoyaltyTransaction, error) {
	var entry *models.LoyaltyTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		if booking.Status != constants.BookingStatusConfirmed {
			return apperrors.NewAppError(apperrors.ErrCodeBookingState, "Chỉ tích điểm cho đặt phòng đã xác nhận", nil)
		}

		e, err := s.AccrueTx(tx, &booking)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Redeem đổi điểm lấy voucher ưu đãi. Mỗi user chỉ đổi một ưu đãi một lần.
func (s *LoyaltyService) Redeem(userID, rewardID uint) (*models.UserVoucher, error) {
	var voucher *models.UserVoucher
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return err
		}

		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRewardNotFound
			}
			return err
		}

		if models.MembershipLevelForPoints(user.Points) != reward.MembershipLevel {
			return apperrors.ErrMembershipLevel
		}
		if user.Points < reward.PointsRequired {
			return apperrors.ErrInsufficientPoints
		}

		var existing models.UserVoucher
		err := tx.Where("user_id = ? AND voucher_code = ?", userID, reward.VoucherCode).
			First(&existing).Error
		if err == nil {
			return apperrors.ErrDuplicateRedeem
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Hạn voucher lấy theo hạn của khuyến mãi gắn với ưu đãi
		expiry := time.Now().AddDate(0, 1, 0)
		var discount models.Discount
		err = tx.Where("code = ? AND is_deleted = ?", reward.VoucherCode, false).First(&discount).Error
		if err == nil {
			expiry = discount.EndDate
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Trừ điểm có điều kiện để hai lượt đổi song song không rút quá số dư
		res := tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", userID, reward.PointsRequired).
			Update("points", gorm.Expr("points - ?", reward.PointsRequired))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInsufficientPoints
		}

		entry := models.LoyaltyTransaction{
			UserID:      userID,
			Points:      -reward.PointsRequired,
			Type:        constants.TransactionTypeRewardRedemption,
			Status:      constants.TransactionStatusCompleted,
			Description: fmt.Sprintf("Đổi ưu đãi %s", reward.Name),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		uv := models.UserVoucher{
			UserID:      userID,
			RewardID:    reward.ID,
			VoucherCode: reward.VoucherCode,
			ExpiryDate:  expiry,
		}
		if err := tx.Create(&uv).Error; err != nil {
			return err
		}
		voucher = &uv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User %d đổi ưu đãi %d lấy voucher %s", userID, rewardID, voucher.VoucherCode)
	return voucher, nil
}

// History trả về sổ bút toán điểm của user, mới nhất trước
func (s *LoyaltyService) History(userID uint) ([]models.LoyaltyTransaction, error) {
	var entries []models.LoyaltyTransaction
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Balance trả về điểm hiện tại và cấp độ thành viên suy ra từ điểm
func (s *LoyaltyService) Balance(userID uint) (int64, string, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", apperrors.ErrUserNotFound
		}
		return 0, "", err
	}
	return user.Points, models.MembershipLevelForPoints(user.Points), nil
}

// CreateReward thêm ưu đãi vào danh mục đổi điểm. Mã voucher của ưu đãi
// phải trỏ tới một khuyến mãi loại voucher đang tồn tại.
func (s *LoyaltyService) CreateReward(reward *models.Reward) error {
	if reward.PointsRequired <= 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "Số điểm yêu cầu phải dương", nil)
	}
	if !models.ValidMembershipLevel(reward.MembershipLevel) {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cấp độ thành viên không hợp lệ", nil)
	}
	var count int64
	if err := s.db.Model(&models.Discount{}).
		Where("code = ? AND type = ? AND is_deleted = ?", reward.VoucherCode, constants.DiscountTypeVoucher, false).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Mã voucher không trỏ tới khuyến mãi nào", nil)
	}
	return s.db.Create(reward).Error
}

// UpdateReward cập nhật một ưu đãi trong danh mục
func (s *LoyaltyService) UpdateReward(rewardID uint, update *models.Reward) (*models.Reward, error) {
	var reward models.Reward
	if err := s.db.First(&reward, rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRewardNotFound
		}
		return nil, err
	}
	if update.PointsRequired <= 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "Số điểm yêu cầu phải dương", nil)
	}
	if !models.ValidMembershipLevel(update.MembershipLevel) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Cấp độ thành viên không hợp lệ", nil)
	}
	if err := s.db.Model(&reward).Select("name", "description", "points_required",
		"membership_level", "voucher_code").Updates(update).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// DeleteReward gỡ ưu đãi khỏi danh mục, voucher đã đổi không bị ảnh hưởng
func (s *LoyaltyService) DeleteReward(rewardID uint) error {
	res := s.db.Delete(&models.Reward{}, rewardID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRewardNotFound
	}
	return nil
}

// Vouchers liệt kê voucher của user, có thể lọc chỉ lấy voucher chưa dùng
func (s *LoyaltyService) Vouchers(userID uint, onlyUnused bool) ([]models.UserVoucher, error) {
	query := s.db.Where("user_id = ?", userID)
	if onlyUnused {
		query = query.Where("is_used = ?", false)
	}
	var vouchers []models.UserVoucher
	if err := query.Order("expiry_date").Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// ListRewards liệt kê toàn bộ danh mục ưu đãi
func (s *LoyaltyService) ListRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	if err := s.db.Order("membership_level, points_required").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// RewardsFor liệt kê ưu đãi đúng cấp độ hiện tại của user và nằm trong
// số điểm user đang có.
func (s *LoyaltyService) RewardsFor(userID uint) ([]models.Reward, error) {
	points, level, err := s.Balance(userID)
	if err != nil {
		return nil, err
	}
	var rewards []models.Reward
	if err := s.db.Where("membership_level = ? AND points_required <= ?", level, points).
		Order("points_required").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}
