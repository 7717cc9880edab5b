package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/services/logger"
)

// BookingService điều phối việc tạo/sửa đặt phòng cùng danh sách khoảng
// đã giữ của phòng trong một đơn vị giao dịch duy nhất.
type BookingService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewBookingService(db *gorm.DB, l logger.Logger) *BookingService {
	return &BookingService{db: db, logger: l}
}

// bumpRoomVersion chốt phiên bản phòng theo kiểu compare-and-swap. Hai yêu cầu
// cùng sửa danh sách khoảng của một phòng thì chỉ một yêu cầu qua được.
func bumpRoomVersion(tx *gorm.DB, room *models.Room) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND version = ?", room.ID, room.Version).
		Update("version", gorm.Expr("version + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrSlotConflict
	}
	return nil
}

// loadRoomForUpdate đọc phòng kèm danh sách khoảng bên trong transaction
func loadRoomForUpdate(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := tx.Preload("CurrentBookings").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// releaseInterval gỡ khoảng của một đặt phòng khỏi phòng và chốt phiên bản
func releaseInterval(tx *gorm.DB, booking *models.Booking) error {
	room, err := loadRoomForUpdate(tx, booking.RoomID)
	if err != nil {
		// Phòng đã bị xóa thì không còn khoảng để gỡ
		if errors.Is(err, apperrors.ErrRoomNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Where("room_id = ? AND booking_id = ?", room.ID, booking.ID).
		Delete(&models.BookedInterval{}).Error; err != nil {
		return err
	}
	return bumpRoomVersion(tx, room)
}

// Validate kiểm tra trước dữ liệu đặt phòng, không ghi gì.
// Dùng cho endpoint kiểm tra; kết quả không có tính ràng buộc vì
// phòng có thể bị đặt trước khi CreateBooking chạy.
func (s *BookingService) Validate(roomID uint, roomType string, checkin, checkout time.Time, adults, children int) error {
	var room models.Room
	if err := s.db.Preload("CurrentBookings").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRoomNotFound
		}
		return err
	}
	if roomType != "" && room.Type != roomType {
		return apperrors.ErrRoomTypeMismatch
	}
	return CheckRoomBookable(&room, checkin, checkout, adults+children)
}

// CreateBooking tạo đặt phòng mới và ghi khoảng [checkin, checkout) lên
// phòng trong cùng một transaction. Kiểm tra trùng lịch được chạy lại bên
// trong transaction để chặn hai yêu cầu song song cùng thấy "còn trống".
func (s *BookingService) CreateBooking(booking *models.Booking) error {
	if !booking.Checkin.Before(booking.Checkout) {
		return apperrors.ErrInvalidInterval
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		room, err := loadRoomForUpdate(tx, booking.RoomID)
		if err != nil {
			return err
		}

		if err := CheckRoomBookable(room, booking.Checkin, booking.Checkout, booking.Adults+booking.Children); err != nil {
			return err
		}

		booking.Status = constants.BookingStatusPending
		booking.PaymentStatus = constants.PaymentStatusPending
		if booking.PaymentMethod == constants.PaymentMethodBankTransfer {
			deadline := time.Now().Add(constants.BankTransferDeadlineMinutes * time.Minute)
			booking.PaymentDeadline = &deadline
		}

		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		interval := models.BookedInterval{
			RoomID:    room.ID,
			BookingID: booking.ID,
			Checkin:   booking.Checkin,
			Checkout:  booking.Checkout,
		}
		if err := tx.Create(&interval).Error; err != nil {
			return err
		}

		return bumpRoomVersion(tx, room)
	})
	if err != nil {
		s.logger.Error("Lỗi khi đặt phòng %d: %v", booking.RoomID, err)
		return err
	}

	s.logger.Info("Đặt phòng %d thành công cho phòng %d", booking.ID, booking.RoomID)
	return nil
}

// CancelBooking hủy một đặt phòng đang chờ và trả lại khoảng cho phòng.
// Đặt phòng đã xác nhận không hủy được qua đường này.
func (s *BookingService) CancelBooking(bookingID uint, reason string) (*models.Booking, error) {
	if reason == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Lý do hủy không được để trống", nil)
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}

		if err := models.GetBookingState(booking.Status).Cancel(&booking, reason); err != nil {
			return err
		}

		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		return releaseInterval(tx, &booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Hủy đặt phòng %d: %s", booking.ID, reason)
	return &booking, nil
}

// AssignRoom chuyển đặt phòng sang phòng mới cùng loại: gỡ khoảng khỏi
// phòng cũ, ghi khoảng lên phòng mới, cập nhật tham chiếu phòng của đặt
// phòng, tất cả trong một transaction.
func (s *BookingService) AssignRoom(bookingID, newRoomID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}

		if booking.Status == constants.BookingStatusCanceled {
			return apperrors.ErrBookingCanceled
		}

		newRoom, err := loadRoomForUpdate(tx, newRoomID)
		if err != nil {
			return err
		}

		if newRoom.AvailabilityStatus != constants.RoomStatusAvailable {
			return apperrors.ErrRoomUnavailable
		}
		if newRoom.Type != booking.RoomType {
			return apperrors.ErrRoomTypeMismatch
		}
		if HasConflict(newRoom.CurrentBookings, booking.Checkin, booking.Checkout, 0) {
			return apperrors.ErrSlotConflict
		}

		if err := releaseInterval(tx, &booking); err != nil {
			return err
		}

		booking.RoomID = newRoomID
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		interval := models.BookedInterval{
			RoomID:    newRoom.ID,
			BookingID: booking.ID,
			Checkin:   booking.Checkin,
			Checkout:  booking.Checkout,
		}
		if err := tx.Create(&interval).Error; err != nil {
			return err
		}

		return bumpRoomVersion(tx, newRoom)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Gán đặt phòng %d sang phòng %d", booking.ID, newRoomID)
	return &booking, nil
}

// ExtendStay gia hạn ngày trả phòng. Khoảng mở rộng được kiểm tra với mọi
// khoảng khác trên cùng phòng, trừ khoảng của chính đặt phòng này.
func (s *BookingService) ExtendStay(bookingID uint, newCheckout time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}

		if booking.Status == constants.BookingStatusCanceled {
			return apperrors.ErrBookingCanceled
		}
		if !newCheckout.After(booking.Checkout) {
			return apperrors.ErrInvalidInterval
		}

		room, err := loadRoomForUpdate(tx, booking.RoomID)
		if err != nil {
			return err
		}

		if HasConflict(room.CurrentBookings, booking.Checkin, newCheckout, booking.ID) {
			return apperrors.ErrSlotConflict
		}

		booking.Checkout = newCheckout
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.BookedInterval{}).
			Where("room_id = ? AND booking_id = ?", room.ID, booking.ID).
			Update("checkout", newCheckout).Error; err != nil {
			return err
		}

		return bumpRoomVersion(tx, room)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Gia hạn đặt phòng %d đến %s", booking.ID, newCheckout.Format("2006-01-02"))
	return &booking, nil
}

// GetByID lấy đặt phòng theo ID
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Room").Preload("AppliedVouchers").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// List liệt kê đặt phòng, lọc theo trạng thái nếu có, mới nhất trước
func (s *BookingService) List(status string) ([]models.Booking, error) {
	query := s.db.Preload("Room").Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByRoom liệt kê đặt phòng của một phòng
func (s *BookingService) ListByRoom(roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Where("room_id = ?", roomID).
		Order("checkin").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// HistoryByEmail liệt kê lịch sử đặt phòng theo email khách
func (s *BookingService) HistoryByEmail(email string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Preload("Room").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC, id DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateNote cập nhật ghi chú cho đặt phòng chưa hủy
func (s *BookingService) UpdateNote(bookingID uint, note string) (*models.Booking, error) {
	if note == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Ghi chú không được để trống", nil)
	}
	booking, err := s.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == constants.BookingStatusCanceled {
		return nil, apperrors.ErrBookingCanceled
	}
	booking.SpecialRequest = note
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdatePaymentMethod đổi phương thức thanh toán cho đặt phòng chưa hủy
func (s *BookingService) UpdatePaymentMethod(bookingID uint, method string) (*models.Booking, error) {
	switch method {
	case constants.PaymentMethodCash, constants.PaymentMethodCreditCard, constants.PaymentMethodBankTransfer,
		constants.PaymentMethodMobilePayment, constants.PaymentMethodVNPay:
	default:
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Phương thức thanh toán không hợp lệ", nil)
	}
	booking, err := s.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == constants.BookingStatusCanceled {
		return nil, apperrors.ErrBookingCanceled
	}
	booking.PaymentMethod = method
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}
