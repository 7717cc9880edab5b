package services

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/services/logger"
)

// DiscountService giải quyết việc áp nhiều khuyến mãi lên một đặt phòng
// theo quy tắc chồng ưu đãi: ưu đãi không cộng dồn chỉ nhận được khi nó
// là ưu đãi đầu tiên, các ưu đãi cộng dồn nhận được bất kỳ lúc nào.
type DiscountService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewDiscountService(db *gorm.DB, l logger.Logger) *DiscountService {
	return &DiscountService{db: db, logger: l}
}

// AppliedDiscount là một ưu đãi đã được chấp nhận trong kết quả áp dụng
type AppliedDiscount struct {
	DiscountID uint    `json:"discountId"`
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
}

// ApplyResult là kết quả áp khuyến mãi lên một đặt phòng
type ApplyResult struct {
	BaseAmount    float64           `json:"baseAmount"`
	TotalDiscount float64           `json:"totalDiscount"`
	FinalAmount   float64           `json:"finalAmount"`
	Applied       []AppliedDiscount `json:"applied"`
	Skipped       []string          `json:"skipped,omitempty"`
}

// discountRule kiểm tra điều kiện riêng của từng loại khuyến mãi.
// Trả về lỗi nếu user không đủ điều kiện nhận ưu đãi.
type discountRule interface {
	Eligible(tx *gorm.DB, user *models.User, d *models.Discount) error
}

// voucherRule: user phải sở hữu voucher cá nhân chưa dùng, chưa hết hạn,
// và chưa từng dùng khuyến mãi này trước đó.
type voucherRule struct{ now time.Time }

func (r voucherRule) Eligible(tx *gorm.DB, user *models.User, d *models.Discount) error {
	if user == nil {
		return apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Cần đăng nhập để dùng voucher", nil)
	}
	if d.Code == nil {
		return apperrors.ErrDiscountNotFound
	}

	var uv models.UserVoucher
	err := tx.Where("user_id = ? AND voucher_code = ?", user.ID, *d.Code).First(&uv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(apperrors.ErrCodeValidation, "Bạn chưa sở hữu voucher này", nil)
		}
		return err
	}
	if uv.IsUsed {
		return apperrors.ErrVoucherUsed
	}
	if r.now.After(uv.ExpiryDate) {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Voucher đã hết hạn", nil)
	}

	var usage models.UserDiscount
	err = tx.Where("user_id = ? AND discount_id = ?", user.ID, d.ID).First(&usage).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && usage.UsageCount >= 1 {
		return apperrors.ErrVoucherUsed
	}
	return nil
}

// festivalRule: áp dụng cho mọi người, chỉ cần còn trong cửa sổ hiệu lực
type festivalRule struct{}

func (festivalRule) Eligible(tx *gorm.DB, user *models.User, d *models.Discount) error {
	return nil
}

// memberRule: cấp độ thành viên suy từ điểm phải khớp cấp độ của ưu đãi
type memberRule struct{}

func (memberRule) Eligible(tx *gorm.DB, user *models.User, d *models.Discount) error {
	if user == nil {
		return apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Cần đăng nhập để dùng ưu đãi thành viên", nil)
	}
	if d.MembershipLevel == nil || models.MembershipLevelForPoints(user.Points) != *d.MembershipLevel {
		return apperrors.ErrMembershipLevel
	}
	return nil
}

// accumulatedRule: tổng chi tiêu đã hoàn tất phải đạt ngưỡng tối thiểu
type accumulatedRule struct{}

func (accumulatedRule) Eligible(tx *gorm.DB, user *models.User, d *models.Discount) error {
	if user == nil {
		return apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Cần đăng nhập để dùng ưu đãi tích lũy", nil)
	}
	if d.MinSpending == nil {
		return apperrors.ErrDiscountNotFound
	}

	var total float64
	err := tx.Model(&models.LoyaltyTransaction{}).
		Where("user_id = ? AND type = ? AND status = ?", user.ID, constants.TransactionTypeEarn, constants.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	if total < *d.MinSpending {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Chi tiêu tích lũy chưa đạt mức tối thiểu", nil)
	}
	return nil
}

func ruleFor(discountType string, now time.Time) discountRule {
	switch discountType {
	case constants.DiscountTypeVoucher:
		return voucherRule{now: now}
	case constants.DiscountTypeMember:
		return memberRule{}
	case constants.DiscountTypeAccumulated:
		return accumulatedRule{}
	default:
		return festivalRule{}
	}
}

// candidate giữ khuyến mãi cùng số tiền giảm tạm tính để sắp thứ tự
type candidate struct {
	discount *models.Discount
	amount   float64
}

// fetchDiscount tìm khuyến mãi theo mã voucher hoặc ID dạng số
func fetchDiscount(tx *gorm.DB, identifier string) (*models.Discount, error) {
	var d models.Discount
	query := tx.Where("is_deleted = ?", false)
	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("code = ?", identifier)
	}
	if err := query.First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Preview tính kết quả áp khuyến mãi mà không ghi gì.
// userID = 0 nghĩa là khách chưa đăng nhập, khi đó các loại ưu đãi gắn
// với tài khoản (voucher, member, accumulated) bị từ chối.
func (s *DiscountService) Preview(roomID uint, userID uint, checkin, checkout time.Time, identifiers []string) (*ApplyResult, error) {
	var result *ApplyResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		booking := models.Booking{RoomID: roomID, Checkin: checkin, Checkout: checkout}
		r, err := s.resolve(tx, &booking, userID, identifiers)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}

// ApplyToBooking áp khuyến mãi lên một đặt phòng đã tồn tại và ghi lại
// các hiệu ứng phụ (đánh dấu voucher đã dùng, tăng bộ đếm sử dụng, ghi
// danh sách ưu đãi lên đặt phòng) trong một transaction.
func (s *DiscountService) ApplyToBooking(bookingID uint, userID uint, identifiers []string) (*ApplyResult, error) {
	var result *ApplyResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		if booking.Status == constants.BookingStatusCanceled {
			return apperrors.ErrBookingCanceled
		}

		r, err := s.resolve(tx, &booking, userID, identifiers)
		if err != nil {
			return err
		}

		for _, applied := range r.Applied {
			if err := s.recordUsage(tx, &booking, userID, applied); err != nil {
				return err
			}
		}

		booking.VoucherDiscount = r.TotalDiscount
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Áp %d khuyến mãi cho đặt phòng %d, giảm %.2f", len(result.Applied), bookingID, result.TotalDiscount)
	return result, nil
}

// resolve chạy toàn bộ chuỗi lọc và chồng ưu đãi trên một đặt phòng
func (s *DiscountService) resolve(tx *gorm.DB, booking *models.Booking, userID uint, identifiers []string) (*ApplyResult, error) {
	now := time.Now()

	var user *models.User
	if userID != 0 {
		var u models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, err
		}
		user = &u
	}

	baseAmount, err := bookingBaseAmount(tx, booking)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{BaseAmount: baseAmount}

	// Lọc từng ưu đãi: cửa sổ hiệu lực, phạm vi phòng, mức tối thiểu,
	// rồi điều kiện riêng theo loại. Ưu đãi rớt bước nào ghi vào Skipped.
	var candidates []candidate
	for _, identifier := range identifiers {
		d, err := fetchDiscount(tx, identifier)
		if err != nil {
			if errors.Is(err, apperrors.ErrDiscountNotFound) {
				result.Skipped = append(result.Skipped, identifier+": không tồn tại")
				continue
			}
			return nil, err
		}
		if !d.ActiveAt(now) {
			result.Skipped = append(result.Skipped, d.Name+": ngoài thời gian hiệu lực")
			continue
		}
		if !d.AppliesToRoom(booking.RoomID) {
			result.Skipped = append(result.Skipped, d.Name+": không áp dụng cho phòng này")
			continue
		}
		if baseAmount < d.MinBookingAmount {
			result.Skipped = append(result.Skipped, d.Name+": chưa đạt giá trị đặt phòng tối thiểu")
			continue
		}
		if err := ruleFor(d.Type, now).Eligible(tx, user, d); err != nil {
			if appErr := apperrors.GetAppError(err); appErr != nil || apperrors.IsConflict(err) || errors.Is(err, apperrors.ErrMembershipLevel) {
				result.Skipped = append(result.Skipped, d.Name+": không đủ điều kiện")
				continue
			}
			return nil, err
		}
		candidates = append(candidates, candidate{discount: d, amount: d.Amount(baseAmount)})
	}

	// Thứ tự chồng ưu đãi cố định: tiền giảm tạm tính giảm dần, hòa thì
	// theo ID tăng dần. Cùng một tập ưu đãi luôn cho cùng một kết quả.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].amount != candidates[j].amount {
			return candidates[i].amount > candidates[j].amount
		}
		return candidates[i].discount.ID < candidates[j].discount.ID
	})

	for _, c := range candidates {
		if len(result.Applied) > 0 && !c.discount.IsStackable {
			result.Skipped = append(result.Skipped, c.discount.Name+": không cộng dồn với ưu đãi khác")
			continue
		}
		code := ""
		if c.discount.Code != nil {
			code = *c.discount.Code
		}
		result.Applied = append(result.Applied, AppliedDiscount{
			DiscountID: c.discount.ID,
			Code:       code,
			Type:       c.discount.Type,
			Amount:     c.amount,
		})
		result.TotalDiscount += c.amount
	}

	// Tổng giảm không vượt quá tiền đặt phòng
	if result.TotalDiscount > baseAmount {
		result.TotalDiscount = baseAmount
	}
	result.FinalAmount = baseAmount - result.TotalDiscount
	return result, nil
}

// recordUsage ghi hiệu ứng phụ của một ưu đãi được chấp nhận
func (s *DiscountService) recordUsage(tx *gorm.DB, booking *models.Booking, userID uint, applied AppliedDiscount) error {
	if booking.ID != 0 {
		av := models.AppliedVoucher{
			BookingID: booking.ID,
			Code:      applied.Code,
			Amount:    applied.Amount,
		}
		if av.Code == "" {
			av.Code = strconv.FormatUint(uint64(applied.DiscountID), 10)
		}
		if err := tx.Create(&av).Error; err != nil {
			return err
		}
	}

	if userID == 0 {
		return nil
	}

	// Voucher cá nhân chỉ dùng một lần
	if applied.Type == constants.DiscountTypeVoucher && applied.Code != "" {
		res := tx.Model(&models.UserVoucher{}).
			Where("user_id = ? AND voucher_code = ? AND is_used = ?", userID, applied.Code, false).
			Update("is_used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrVoucherUsed
		}
	}

	var usage models.UserDiscount
	err := tx.Where("user_id = ? AND discount_id = ?", userID, applied.DiscountID).First(&usage).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		usage = models.UserDiscount{UserID: userID, DiscountID: applied.DiscountID, UsageCount: 1}
		return tx.Create(&usage).Error
	case err != nil:
		return err
	default:
		return tx.Model(&usage).Update("usage_count", gorm.Expr("usage_count + 1")).Error
	}
}

// bookingBaseAmount tính tiền phòng trước giảm giá: giá mỗi đêm nhân số đêm
func bookingBaseAmount(tx *gorm.DB, booking *models.Booking) (float64, error) {
	var room models.Room
	if err := tx.First(&room, booking.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrRoomNotFound
		}
		return 0, err
	}
	return room.RentPerDay * float64(booking.Nights()), nil
}

// CreateDiscount tạo khuyến mãi mới sau khi kiểm tra bất biến theo loại
func (s *DiscountService) CreateDiscount(d *models.Discount) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(d).Error; err != nil {
		return err
	}
	s.logger.Info("Tạo khuyến mãi %d (%s)", d.ID, d.Type)
	return nil
}

// UpdateDiscount cập nhật khuyến mãi còn tồn tại
func (s *DiscountService) UpdateDiscount(id uint, update *models.Discount) (*models.Discount, error) {
	var d models.Discount
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDiscountNotFound
		}
		return nil, err
	}

	update.ID = d.ID
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Model(&d).Select("name", "code", "description", "type", "discount_type",
		"discount_value", "applicable_rooms", "start_date", "end_date", "min_booking_amount",
		"max_discount", "is_stackable", "membership_level", "min_spending").
		Updates(update).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDiscount đánh dấu xóa mềm, lịch sử sử dụng giữ nguyên
func (s *DiscountService) DeleteDiscount(id uint) error {
	res := s.db.Model(&models.Discount{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrDiscountNotFound
	}
	return nil
}

// ListEligibleForUser liệt kê ưu đãi thành viên và ưu đãi tích lũy mà
// user hiện đủ điều kiện nhận, dựa trên cấp độ suy từ điểm và tổng chi
// tiêu đã hoàn tất.
func (s *DiscountService) ListEligibleForUser(userID uint) ([]models.Discount, error) {
	now := time.Now()

	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	var discounts []models.Discount
	if err := s.db.Where("is_deleted = ? AND type IN ?", false,
		[]string{constants.DiscountTypeMember, constants.DiscountTypeAccumulated}).
		Order("id").Find(&discounts).Error; err != nil {
		return nil, err
	}

	var eligible []models.Discount
	for i := range discounts {
		d := &discounts[i]
		if !d.ActiveAt(now) {
			continue
		}
		if err := ruleFor(d.Type, now).Eligible(s.db, &user, d); err != nil {
			if appErr := apperrors.GetAppError(err); appErr != nil || errors.Is(err, apperrors.ErrMembershipLevel) || errors.Is(err, apperrors.ErrDiscountNotFound) {
				continue
			}
			return nil, err
		}
		eligible = append(eligible, *d)
	}
	return eligible, nil
}

// ListDiscounts liệt kê khuyến mãi chưa xóa, lọc theo loại nếu có
func (s *DiscountService) ListDiscounts(discountType string) ([]models.Discount, error) {
	query := s.db.Where("is_deleted = ?", false)
	if discountType != "" {
		query = query.Where("type = ?", discountType)
	}
	var discounts []models.Discount
	if err := query.Order("id").Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}
