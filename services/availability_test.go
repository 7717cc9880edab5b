package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
)

func TestOverlapsHalfOpen(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name                 string
		checkin, checkout    time.Time
		existIn, existOut    time.Time
		want                 bool
	}{
		{"tách rời hoàn toàn", day(1), day(3), day(5), day(7), false},
		{"trùng một phần", day(1), day(6), day(5), day(7), true},
		{"bao trọn", day(1), day(10), day(5), day(7), true},
		{"nằm trong", day(5), day(6), day(1), day(10), true},
		{"trả phòng ngày nhận phòng", day(1), day(5), day(5), day(7), false},
		{"nhận phòng ngày trả phòng", day(7), day(9), day(5), day(7), false},
		{"trùng khít", day(5), day(7), day(5), day(7), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.checkin, tt.checkout, tt.existIn, tt.existOut); got != tt.want {
				t.Fatalf("Overlaps = %v, muốn %v", got, tt.want)
			}
		})
	}
}

func TestHasConflictExcludesOwnBooking(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}
	intervals := []models.BookedInterval{
		{BookingID: 1, Checkin: day(1), Checkout: day(5)},
		{BookingID: 2, Checkin: day(10), Checkout: day(12)},
	}

	if !HasConflict(intervals, day(3), day(6), 0) {
		t.Fatal("phải phát hiện trùng với đặt phòng 1")
	}
	if HasConflict(intervals, day(3), day(6), 1) {
		t.Fatal("không được tính khoảng của chính đặt phòng 1")
	}
	if HasConflict(intervals, day(3), day(6), 1) || HasConflict(intervals, day(5), day(10), 0) {
		t.Fatal("khoảng chạm mép không được tính là trùng")
	}
}

func TestCheckRoomBookable(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}
	room := &models.Room{
		MaxCount:           3,
		AvailabilityStatus: constants.RoomStatusAvailable,
		CurrentBookings: []models.BookedInterval{
			{BookingID: 1, Checkin: day(10), Checkout: day(12)},
		},
	}

	if err := CheckRoomBookable(room, day(1), day(5), 2); err != nil {
		t.Fatalf("phòng trống phải đặt được: %v", err)
	}

	if err := CheckRoomBookable(room, day(5), day(5), 2); !errors.Is(err, apperrors.ErrInvalidInterval) {
		t.Fatalf("checkin == checkout phải bị chặn, lỗi: %v", err)
	}

	if err := CheckRoomBookable(room, day(1), day(5), 5); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Fatalf("quá sức chứa phải bị chặn, lỗi: %v", err)
	}

	if err := CheckRoomBookable(room, day(11), day(13), 2); !errors.Is(err, apperrors.ErrSlotConflict) {
		t.Fatalf("trùng lịch phải bị chặn, lỗi: %v", err)
	}

	room.AvailabilityStatus = constants.RoomStatusMaintenance
	if err := CheckRoomBookable(room, day(1), day(5), 2); !errors.Is(err, apperrors.ErrRoomUnavailable) {
		t.Fatalf("phòng bảo trì phải bị chặn, lỗi: %v", err)
	}
}
