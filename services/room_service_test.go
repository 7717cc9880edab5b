package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dton04/deployBEHotel/constants"
)

func TestSearchAvailable(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomService(db, nil, nopLogger{})
	bookings := NewBookingService(db, nopLogger{})

	free := createTestRoom(t, db, "701", 500000)
	busy := createTestRoom(t, db, "702", 500000)
	maintenance := createTestRoom(t, db, "703", 500000)
	if _, err := rooms.ChangeStatus(context.Background(), maintenance.ID, constants.RoomStatusMaintenance); err != nil {
		t.Fatalf("đổi trạng thái: %v", err)
	}

	blocker := newTestBooking(busy, date(t, "2026-09-01"), date(t, "2026-09-05"))
	if err := bookings.CreateBooking(blocker); err != nil {
		t.Fatalf("tạo đặt phòng chắn: %v", err)
	}

	found, err := rooms.SearchAvailable(context.Background(), date(t, "2026-09-02"), date(t, "2026-09-04"), "", 0)
	if err != nil {
		t.Fatalf("tìm phòng: %v", err)
	}
	if len(found) != 1 || found[0].ID != free.ID {
		t.Fatalf("chỉ phòng trống được trả về, found = %d phòng", len(found))
	}

	// Khoảng chạm mép với đặt phòng hiện có thì phòng bận vẫn trống
	found, err = rooms.SearchAvailable(context.Background(), date(t, "2026-09-05"), date(t, "2026-09-07"), "", 0)
	if err != nil {
		t.Fatalf("tìm phòng: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("phòng bận phải trống sau ngày trả, found = %d phòng", len(found))
	}

	// Lọc theo số khách
	found, err = rooms.SearchAvailable(context.Background(), date(t, "2026-09-02"), date(t, "2026-09-04"), "", 10)
	if err != nil {
		t.Fatalf("tìm phòng: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("quá sức chứa không phòng nào khớp, found = %d", len(found))
	}
}

func TestStatsCountsByStatus(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomService(db, nil, nopLogger{})
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "704", 1000000)
	createTestUser(t, db, "guest@example.com", 0)

	confirmed := newTestBooking(room, date(t, "2026-09-01"), date(t, "2026-09-03"))
	if err := bookings.CreateBooking(confirmed); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}
	if _, err := payments.ConfirmPayment(confirmed.ID); err != nil {
		t.Fatalf("xác nhận: %v", err)
	}

	canceled := newTestBooking(room, date(t, "2026-09-10"), date(t, "2026-09-12"))
	if err := bookings.CreateBooking(canceled); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}
	if _, err := bookings.CancelBooking(canceled.ID, "Khách hủy"); err != nil {
		t.Fatalf("hủy: %v", err)
	}

	pending := newTestBooking(room, date(t, "2026-09-20"), date(t, "2026-09-22"))
	if err := bookings.CreateBooking(pending); err != nil {
		t.Fatalf("tạo đặt phòng: %v", err)
	}

	stats, err := rooms.Stats()
	if err != nil {
		t.Fatalf("thống kê: %v", err)
	}
	if stats.Total != 3 || stats.Pending != 1 || stats.Confirmed != 1 || stats.Canceled != 1 {
		t.Fatalf("thống kê = %+v", stats)
	}
	if stats.Revenue != 2000000 {
		t.Fatalf("doanh thu = %.0f, muốn 2000000", stats.Revenue)
	}
}

func TestRevenueSeries(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomService(db, nil, nopLogger{})
	bookings := NewBookingService(db, nopLogger{})
	payments := newPaymentService(db)
	room := createTestRoom(t, db, "705", 1000000)
	createTestUser(t, db, "guest@example.com", 0)

	for _, window := range [][2]string{
		{"2026-10-01", "2026-10-03"},
		{"2026-10-10", "2026-10-12"},
	} {
		booking := newTestBooking(room, date(t, window[0]), date(t, window[1]))
		if err := bookings.CreateBooking(booking); err != nil {
			t.Fatalf("tạo đặt phòng: %v", err)
		}
		if _, err := payments.ConfirmPayment(booking.ID); err != nil {
			t.Fatalf("xác nhận: %v", err)
		}
	}

	// Hai bút toán cùng tháng hiện tại gộp thành một điểm
	series, err := rooms.RevenueSeries("month")
	if err != nil {
		t.Fatalf("doanh thu theo tháng: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("số điểm doanh thu = %d, muốn 1", len(series))
	}
	if series[0].Revenue != 4000000 {
		t.Fatalf("doanh thu = %.0f, muốn 4000000", series[0].Revenue)
	}
	if series[0].Period != time.Now().Format("2006-01") {
		t.Fatalf("mốc thời gian = %q", series[0].Period)
	}
}
