package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/services/logger"
)

// PaymentService quản lý vòng đời thanh toán của đặt phòng:
// pending -> confirmed (thanh toán thành công) hoặc pending -> canceled
// (hủy tay hoặc quá hạn chuyển khoản). Hai trạng thái cuối là bất biến.
type PaymentService struct {
	db      *gorm.DB
	loyalty *LoyaltyService
	logger  logger.Logger
}

func NewPaymentService(db *gorm.DB, loyalty *LoyaltyService, l logger.Logger) *PaymentService {
	return &PaymentService{db: db, loyalty: loyalty, logger: l}
}

// GatewayEvent là thông báo kết quả từ cổng thanh toán
type GatewayEvent struct {
	OrderID       string `json:"orderId"`
	RequestID     string `json:"requestId"`
	TransactionID string `json:"transId"`
	ResultCode    int    `json:"resultCode"` // 0 = thành công
	Message       string `json:"message"`
}

// ConfirmPayment xác nhận thanh toán cho một đặt phòng đang chờ.
// Chuyển trạng thái sang confirmed/paid và tích điểm nếu email khớp
// một tài khoản. Đặt phòng đã ở trạng thái cuối trả lỗi xung đột.
func (s *PaymentService) ConfirmPayment(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}

		if err := s.expireIfPastDeadline(tx, &booking, time.Now()); err != nil {
			return err
		}
		if booking.Status == constants.BookingStatusCanceled {
			return apperrors.ErrBookingCanceled
		}

		return s.confirmTx(tx, &booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Xác nhận thanh toán cho đặt phòng %d", booking.ID)
	return &booking, nil
}

// confirmTx chuyển đặt phòng sang confirmed và tích điểm trong cùng transaction.
// Tích điểm trùng hoặc không tìm thấy tài khoản không làm hỏng xác nhận.
func (s *PaymentService) confirmTx(tx *gorm.DB, booking *models.Booking) error {
	if err := models.GetBookingState(booking.Status).Confirm(booking); err != nil {
		return err
	}
	booking.PaymentDeadline = nil
	if err := tx.Save(booking).Error; err != nil {
		return err
	}

	if _, err := s.loyalty.AccrueTx(tx, booking); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEarn) || errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// CreatePaymentIntent gắn mã đối soát của cổng thanh toán lên đặt phòng
// đang chờ, chuẩn bị cho callback.
func (s *PaymentService) CreatePaymentIntent(bookingID uint, orderID, requestID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		if booking.Status != constants.BookingStatusPending {
			return apperrors.NewAppError(apperrors.ErrCodeBookingState, "Chỉ tạo yêu cầu thanh toán cho đặt phòng đang chờ", nil)
		}

		booking.GatewayOrderID = orderID
		booking.GatewayRequestID = requestID
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// HandleGatewayCallback xử lý thông báo từ cổng thanh toán. Callback lặp
// lại cho đặt phòng đã xác nhận là no-op, cổng có thể gửi trùng.
func (s *PaymentService) HandleGatewayCallback(event GatewayEvent) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gateway_order_id = ?", event.OrderID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}

		if booking.Status == constants.BookingStatusConfirmed {
			return nil
		}
		if booking.Status == constants.BookingStatusCanceled {
			return apperrors.ErrBookingCanceled
		}

		if event.ResultCode != 0 {
			if err := models.GetBookingState(booking.Status).Cancel(&booking, fmt.Sprintf("Thanh toán thất bại: %s", event.Message)); err != nil {
				return err
			}
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
			return releaseInterval(tx, &booking)
		}

		booking.GatewayTransactionID = event.TransactionID
		return s.confirmTx(tx, &booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Callback cổng thanh toán cho đơn %s: trạng thái %s", event.OrderID, booking.Status)
	return &booking, nil
}

// expireIfPastDeadline hủy đặt phòng chuyển khoản đã quá hạn thanh toán
// và trả lại khoảng cho phòng. Trạng thái sau khi gọi phản ánh đúng
// thực tế dù chưa có tiến trình nền nào chạy.
func (s *PaymentService) expireIfPastDeadline(tx *gorm.DB, booking *models.Booking, now time.Time) error {
	if booking.Status != constants.BookingStatusPending || booking.PaymentDeadline == nil {
		return nil
	}
	if !now.After(*booking.PaymentDeadline) {
		return nil
	}

	if err := models.GetBookingState(booking.Status).Cancel(booking, "Quá hạn thanh toán chuyển khoản"); err != nil {
		return err
	}
	if err := tx.Save(booking).Error; err != nil {
		return err
	}
	if err := releaseInterval(tx, booking); err != nil {
		return err
	}

	s.logger.Info("Đặt phòng %d quá hạn thanh toán, đã hủy", booking.ID)
	return nil
}

// CheckPaymentDeadline trả về trạng thái thanh toán hiện tại của đặt
// phòng, hủy tại chỗ nếu đã quá hạn chuyển khoản.
func (s *PaymentService) CheckPaymentDeadline(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		return s.expireIfPastDeadline(tx, &booking, time.Now())
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// SweepExpiredDeadlines hủy mọi đặt phòng chuyển khoản quá hạn, chạy định
// kỳ từ cron để lịch phòng không giữ khoảng chết lâu.
func (s *PaymentService) SweepExpiredDeadlines(now time.Time) (int, error) {
	var ids []uint
	if err := s.db.Model(&models.Booking{}).
		Where("status = ? AND payment_deadline IS NOT NULL AND payment_deadline < ?", constants.BookingStatusPending, now).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var booking models.Booking
			if err := tx.First(&booking, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			}
			return s.expireIfPastDeadline(tx, &booking, now)
		})
		if err != nil {
			s.logger.Error("Lỗi khi hủy đặt phòng quá hạn %d: %v", id, err)
			continue
		}
		expired++
	}
	return expired, nil
}
