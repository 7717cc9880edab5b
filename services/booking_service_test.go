package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
)

func TestCreateBookingWritesInterval(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	room := createTestRoom(t, db, "101", 500000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	if booking.Status != constants.BookingStatusPending {
		t.Fatalf("trạng thái = %s, muốn pending", booking.Status)
	}
	if booking.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("trạng thái thanh toán = %s, muốn pending", booking.PaymentStatus)
	}
	if booking.PaymentDeadline != nil {
		t.Fatal("không phải chuyển khoản thì không có hạn thanh toán")
	}

	var intervals []models.BookedInterval
	if err := db.Where("room_id = ?", room.ID).Find(&intervals).Error; err != nil {
		t.Fatalf("đọc khoảng: %v", err)
	}
	if len(intervals) != 1 || intervals[0].BookingID != booking.ID {
		t.Fatalf("phòng phải giữ đúng một khoảng của đặt phòng %d, có %d", booking.ID, len(intervals))
	}

	var updated models.Room
	if err := db.First(&updated, room.ID).Error; err != nil {
		t.Fatalf("đọc phòng: %v", err)
	}
	if updated.Version != room.Version+1 {
		t.Fatalf("version = %d, muốn %d", updated.Version, room.Version+1)
	}
}

func TestCreateBookingBankTransferDeadline(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	room := createTestRoom(t, db, "102", 500000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-05"))
	booking.PaymentMethod = constants.PaymentMethodBankTransfer
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	if booking.PaymentDeadline == nil {
		t.Fatal("chuyển khoản phải có hạn thanh toán")
	}
}

func TestCreateBookingConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	room := createTestRoom(t, db, "103", 500000)

	first := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(first); err != nil {
		t.Fatalf("tạo đặt phòng thứ nhất: %v", err)
	}

	overlapping := newTestBooking(room, date(t, "2026-09-04"), date(t, "2026-09-07"))
	if err := svc.CreateBooking(overlapping); !errors.Is(err, apperrors.ErrSlotConflict) {
		t.Fatalf("đặt phòng trùng lịch phải bị chặn, lỗi: %v", err)
	}

	// Nhận phòng đúng ngày trả phòng của đặt phòng trước thì hợp lệ
	backToBack := newTestBooking(room, date(t, "2026-09-05"), date(t, "2026-09-08"))
	if err := svc.CreateBooking(backToBack); err != nil {
		t.Fatalf("đặt phòng nối đuôi phải hợp lệ: %v", err)
	}
}

func TestBumpRoomVersionStale(t *testing.T) {
	db := newTestDB(t)
	room := createTestRoom(t, db, "104", 500000)

	// Phiên bản đã bị lượt khác đẩy lên
	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("version", gorm.Expr("version + 1")).Error; err != nil {
		t.Fatalf("đẩy version: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return bumpRoomVersion(tx, room)
	})
	if !errors.Is(err, apperrors.ErrSlotConflict) {
		t.Fatalf("version cũ phải bị từ chối, lỗi: %v", err)
	}
}

func TestCancelBookingReleasesInterval(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	room := createTestRoom(t, db, "105", 500000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	canceled, err := svc.CancelBooking(booking.ID, "Khách đổi lịch")
	if err != nil {
		t.Fatalf("hủy đặt phòng: %v", err)
	}
	if canceled.Status != constants.BookingStatusCanceled || canceled.PaymentStatus != constants.PaymentStatusCanceled {
		t.Fatalf("trạng thái sau hủy = %s/%s", canceled.Status, canceled.PaymentStatus)
	}
	if canceled.CancelReason != "Khách đổi lịch" {
		t.Fatalf("lý do hủy = %q", canceled.CancelReason)
	}

	var count int64
	db.Model(&models.BookedInterval{}).Where("room_id = ?", room.ID).Count(&count)
	if count != 0 {
		t.Fatalf("khoảng phải được trả lại, còn %d", count)
	}

	// Khoảng đã trả lại thì đặt được ngay
	rebook := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(rebook); err != nil {
		t.Fatalf("đặt lại sau hủy: %v", err)
	}

	// Hủy lần hai phải bị từ chối
	if _, err := svc.CancelBooking(booking.ID, "Lặp lại"); !errors.Is(err, apperrors.ErrBookingCanceled) {
		t.Fatalf("hủy lần hai phải bị chặn, lỗi: %v", err)
	}
}

func TestCancelBookingRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})

	if _, err := svc.CancelBooking(1, ""); err == nil {
		t.Fatal("thiếu lý do hủy phải bị chặn")
	}
}

func TestAssignRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	oldRoom := createTestRoom(t, db, "201", 500000)
	newRoom := createTestRoom(t, db, "202", 500000)

	booking := newTestBooking(oldRoom, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	moved, err := svc.AssignRoom(booking.ID, newRoom.ID)
	if err != nil {
		t.Fatalf("gán phòng: %v", err)
	}
	if moved.RoomID != newRoom.ID {
		t.Fatalf("đặt phòng phải trỏ sang phòng %d, đang là %d", newRoom.ID, moved.RoomID)
	}

	var oldCount, newCount int64
	db.Model(&models.BookedInterval{}).Where("room_id = ?", oldRoom.ID).Count(&oldCount)
	db.Model(&models.BookedInterval{}).Where("room_id = ?", newRoom.ID).Count(&newCount)
	if oldCount != 0 || newCount != 1 {
		t.Fatalf("khoảng phải chuyển sang phòng mới, cũ=%d mới=%d", oldCount, newCount)
	}
}

func TestAssignRoomRejectsTypeMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	oldRoom := createTestRoom(t, db, "203", 500000)
	suite := createTestRoom(t, db, "204", 900000)
	if err := db.Model(suite).Update("type", "Suite").Error; err != nil {
		t.Fatalf("đổi loại phòng: %v", err)
	}

	booking := newTestBooking(oldRoom, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	if _, err := svc.AssignRoom(booking.ID, suite.ID); !errors.Is(err, apperrors.ErrRoomTypeMismatch) {
		t.Fatalf("khác loại phòng phải bị chặn, lỗi: %v", err)
	}
}

func TestAssignRoomRejectsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	oldRoom := createTestRoom(t, db, "205", 500000)
	newRoom := createTestRoom(t, db, "206", 500000)

	blocker := newTestBooking(newRoom, date(t, "2026-09-03"), date(t, "2026-09-06"))
	if err := svc.CreateBooking(blocker); err != nil {
		t.Fatalf("tạo đặt phòng chắn: %v", err)
	}

	booking := newTestBooking(oldRoom, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	if _, err := svc.AssignRoom(booking.ID, newRoom.ID); !errors.Is(err, apperrors.ErrSlotConflict) {
		t.Fatalf("phòng mới bận phải bị chặn, lỗi: %v", err)
	}
}

func TestExtendStay(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	room := createTestRoom(t, db, "301", 500000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	// Rút ngắn không phải gia hạn
	if _, err := svc.ExtendStay(booking.ID, date(t, "2026-09-03")); !errors.Is(err, apperrors.ErrInvalidInterval) {
		t.Fatalf("ngày trả mới phải sau ngày trả cũ, lỗi: %v", err)
	}

	extended, err := svc.ExtendStay(booking.ID, date(t, "2026-09-08"))
	if err != nil {
		t.Fatalf("gia hạn: %v", err)
	}
	if !extended.Checkout.Equal(date(t, "2026-09-08")) {
		t.Fatalf("checkout = %v", extended.Checkout)
	}

	var interval models.BookedInterval
	if err := db.Where("booking_id = ?", booking.ID).First(&interval).Error; err != nil {
		t.Fatalf("đọc khoảng: %v", err)
	}
	if !interval.Checkout.Equal(date(t, "2026-09-08")) {
		t.Fatalf("khoảng phải được cập nhật theo, checkout = %v", interval.Checkout)
	}
}

func TestExtendStayRejectsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	room := createTestRoom(t, db, "302", 500000)

	booking := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := svc.CreateBooking(booking); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}
	next := newTestBooking(room, date(t, "2026-09-06"), date(t, "2026-09-09"))
	if err := svc.CreateBooking(next); err != nil {
		t.Fatalf("tạo đặt phòng kế: %v", err)
	}

	// Gia hạn đến đúng ngày nhận của khách kế thì hợp lệ (khoảng nửa mở)
	if _, err := svc.ExtendStay(booking.ID, date(t, "2026-09-06")); err != nil {
		t.Fatalf("gia hạn chạm mép phải hợp lệ: %v", err)
	}

	// Gia hạn đè lên khách kế thì bị chặn
	if _, err := svc.ExtendStay(booking.ID, date(t, "2026-09-07")); !errors.Is(err, apperrors.ErrSlotConflict) {
		t.Fatalf("gia hạn trùng lịch phải bị chặn, lỗi: %v", err)
	}
}

func TestListAndHistoryByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, nopLogger{})
	room := createTestRoom(t, db, "801", 500000)

	first := newTestBooking(room, date(t, "2026-10-01"), date(t, "2026-10-03"))
	if err := svc.CreateBooking(first); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	other := newTestBooking(room, date(t, "2026-10-10"), date(t, "2026-10-12"))
	other.Email = "Khach.Khac@example.com"
	if err := svc.CreateBooking(other); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}
	if _, err := svc.CancelBooking(other.ID, "Đổi lịch"); err != nil {
		t.Fatalf("hủy: %v", err)
	}

	all, err := svc.List("")
	if err != nil {
		t.Fatalf("liệt kê: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("toàn bộ đặt phòng = %d, muốn 2", len(all))
	}

	canceled, err := svc.List(constants.BookingStatusCanceled)
	if err != nil {
		t.Fatalf("liệt kê theo trạng thái: %v", err)
	}
	if len(canceled) != 1 || canceled[0].ID != other.ID {
		t.Fatalf("lọc trạng thái canceled sai, được %d", len(canceled))
	}

	// So email không phân biệt hoa thường
	history, err := svc.HistoryByEmail("khach.khac@EXAMPLE.com")
	if err != nil {
		t.Fatalf("lịch sử theo email: %v", err)
	}
	if len(history) != 1 || history[0].ID != other.ID {
		t.Fatalf("lịch sử theo email sai, được %d", len(history))
	}

	byRoom, err := svc.ListByRoom(room.ID)
	if err != nil {
		t.Fatalf("liệt kê theo phòng: %v", err)
	}
	if len(byRoom) != 2 {
		t.Fatalf("đặt phòng theo phòng = %d, muốn 2", len(byRoom))
	}
}
