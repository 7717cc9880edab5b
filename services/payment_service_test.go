package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
)

func newPaymentService(db *gorm.DB) *PaymentService {
	loyalty := NewLoyaltyService(db, nopLogger{})
	return NewPaymentService(db, loyalty, nopLogger{})
}

func TestConfirmPayment(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "501", 1000000)
	user := createTestUser(t, db, "guest@example.com", 0)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	if err := bookings.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	confirmed, err := payments.ConfirmPayment(booking.ID)
	if err != nil {
		t.Fatalf("xác nhận thanh toán: %v", err)
	}
	if confirmed.Status != constants.BookingStatusConfirmed || confirmed.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("trạng thái sau xác nhận = %s/%s", confirmed.Status, confirmed.PaymentStatus)
	}

	// Điểm tích đúng một lần: 2.000.000 x 0.01 = 20000
	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("đọc user: %v", err)
	}
	if updated.Points != 20000 {
		t.Fatalf("điểm = %d, muốn 20000", updated.Points)
	}

	// Xác nhận lần hai phải bị từ chối, điểm không đổi
	if _, err := payments.ConfirmPayment(booking.ID); !errors.Is(err, apperrors.ErrBookingConfirmed) {
		t.Fatalf("xác nhận lần hai phải bị chặn, lỗi: %v", err)
	}
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("đọc user: %v", err)
	}
	if updated.Points != 20000 {
		t.Fatalf("điểm sau xác nhận lặp = %d, không được đổi", updated.Points)
	}
}

func TestConfirmPaymentCanceledBooking(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "502", 1000000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	if err := bookings.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}
	if _, err := bookings.CancelBooking(booking.ID, "Khách hủy"); err != nil {
		t.Fatalf("hủy đặt phòng: %v", err)
	}

	if _, err := payments.ConfirmPayment(booking.ID); !errors.Is(err, apperrors.ErrBookingCanceled) {
		t.Fatalf("xác nhận đặt phòng đã hủy phải bị chặn, lỗi: %v", err)
	}
}

func TestLazyDeadlineExpiry(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "503", 1000000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	booking.PaymentMethod = constants.PaymentMethodBankTransfer
	if err := bookings.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	// Lùi hạn thanh toán về quá khứ, như thể 5 phút đã trôi qua
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("payment_deadline", past).Error; err != nil {
		t.Fatalf("lùi hạn: %v", err)
	}

	checked, err := payments.CheckPaymentDeadline(booking.ID)
	if err != nil {
		t.Fatalf("kiểm tra hạn: %v", err)
	}
	if checked.Status != constants.BookingStatusCanceled {
		t.Fatalf("quá hạn phải bị hủy, trạng thái = %s", checked.Status)
	}

	// Khoảng phải được trả lại cho phòng
	var count int64
	db.Model(&models.BookedInterval{}).Where("room_id = ?", room.ID).Count(&count)
	if count != 0 {
		t.Fatalf("khoảng phải được trả lại, còn %d", count)
	}

	// Thanh toán đến sau khi quá hạn phải bị từ chối
	if _, err := payments.ConfirmPayment(booking.ID); !errors.Is(err, apperrors.ErrBookingCanceled) {
		t.Fatalf("thanh toán sau hạn phải bị chặn, lỗi: %v", err)
	}
}

func TestDeadlineNotExpiredYet(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "504", 1000000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	booking.PaymentMethod = constants.PaymentMethodBankTransfer
	if err := bookings.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	checked, err := payments.CheckPaymentDeadline(booking.ID)
	if err != nil {
		t.Fatalf("kiểm tra hạn: %v", err)
	}
	if checked.Status != constants.BookingStatusPending {
		t.Fatalf("còn hạn phải giữ pending, trạng thái = %s", checked.Status)
	}
}

func TestGatewayCallbackIdempotent(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "505", 1000000)
	user := createTestUser(t, db, "guest@example.com", 0)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	if err := bookings.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}
	if _, err := payments.CreatePaymentIntent(booking.ID, "ORDER-1", "REQ-1"); err != nil {
		t.Fatalf("tạo intent: %v", err)
	}

	event := GatewayEvent{OrderID: "ORDER-1", TransactionID: "TX-1", ResultCode: 0}
	first, err := payments.HandleGatewayCallback(event)
	if err != nil {
		t.Fatalf("callback lần một: %v", err)
	}
	if first.Status != constants.BookingStatusConfirmed {
		t.Fatalf("trạng thái sau callback = %s", first.Status)
	}
	if first.GatewayTransactionID != "TX-1" {
		t.Fatalf("mã giao dịch = %q", first.GatewayTransactionID)
	}

	// Cổng gửi trùng: không lỗi, không tích điểm lần hai
	second, err := payments.HandleGatewayCallback(event)
	if err != nil {
		t.Fatalf("callback lần hai: %v", err)
	}
	if second.Status != constants.BookingStatusConfirmed {
		t.Fatalf("trạng thái sau callback trùng = %s", second.Status)
	}

	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("đọc user: %v", err)
	}
	if updated.Points != 20000 {
		t.Fatalf("điểm = %d, callback trùng không được tích thêm", updated.Points)
	}
}

func TestGatewayCallbackFailureCancels(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "506", 1000000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	if err := bookings.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}
	if _, err := payments.CreatePaymentIntent(booking.ID, "ORDER-2", "REQ-2"); err != nil {
		t.Fatalf("tạo intent: %v", err)
	}

	failed, err := payments.HandleGatewayCallback(GatewayEvent{OrderID: "ORDER-2", ResultCode: 49, Message: "Thẻ bị từ chối"})
	if err != nil {
		t.Fatalf("callback thất bại: %v", err)
	}
	if failed.Status != constants.BookingStatusCanceled {
		t.Fatalf("thanh toán thất bại phải hủy đặt phòng, trạng thái = %s", failed.Status)
	}

	var count int64
	db.Model(&models.BookedInterval{}).Where("room_id = ?", room.ID).Count(&count)
	if count != 0 {
		t.Fatalf("khoảng phải được trả lại, còn %d", count)
	}
}

func TestSweepExpiredDeadlines(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "507", 1000000)
	other := createTestRoom(t, db, "508", 1000000)

	expired := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	expired.PaymentMethod = constants.PaymentMethodBankTransfer
	if err := bookings.CreateBooking(expired); err != nil {
		t.Fatalf("tạo đặt phòng quá hạn: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.Booking{}).Where("id = ?", expired.ID).
		Update("payment_deadline", past).Error; err != nil {
		t.Fatalf("lùi hạn: %v", err)
	}

	alive := newTestBooking(other, date(t, "2026-09-01"), date(t, "2026-09-03"))
	alive.PaymentMethod = constants.PaymentMethodBankTransfer
	if err := bookings.CreateBooking(alive); err != nil {
		t.Fatalf("tạo đặt phòng còn hạn: %v", err)
	}

	n, err := payments.SweepExpiredDeadlines(time.Now())
	if err != nil {
		t.Fatalf("quét: %v", err)
	}
	if n != 1 {
		t.Fatalf("phải hủy đúng 1 đặt phòng, hủy %d", n)
	}

	var expiredAfter, aliveAfter models.Booking
	db.First(&expiredAfter, expired.ID)
	db.First(&aliveAfter, alive.ID)
	if expiredAfter.Status != constants.BookingStatusCanceled {
		t.Fatalf("đặt phòng quá hạn phải bị hủy, trạng thái = %s", expiredAfter.Status)
	}
	if aliveAfter.Status != constants.BookingStatusPending {
		t.Fatalf("đặt phòng còn hạn phải giữ pending, trạng thái = %s", aliveAfter.Status)
	}
}
