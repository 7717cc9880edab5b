package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	apperrors "github.com/Dton04/deployBEHotel/errors"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/services/logger"
)

const roomListCacheKey = "rooms:all"

// RoomService quản lý phòng và tìm phòng trống theo khoảng ngày
type RoomService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewRoomService(db *gorm.DB, redisCli *redis.Client, l logger.Logger) *RoomService {
	return &RoomService{db: db, redis: redisCli, logger: l}
}

// ListRooms trả về toàn bộ phòng, đọc cache Redis trước khi chạm DB
func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if s.redis != nil {
		if err := GetFromRedis(ctx, s.redis, roomListCacheKey, &rooms); err == nil && len(rooms) > 0 {
			return rooms, nil
		}
	}

	if err := s.db.Preload("CurrentBookings").Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := SetToRedis(ctx, s.redis, roomListCacheKey, rooms, 5*time.Minute); err != nil {
			s.logger.Error("Không ghi được cache danh sách phòng: %v", err)
		}
	}
	return rooms, nil
}

// invalidateCache xóa cache danh sách phòng sau khi ghi
func (s *RoomService) invalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.redis, roomListCacheKey); err != nil {
		s.logger.Error("Không xóa được cache danh sách phòng: %v", err)
	}
}

// GetRoom lấy phòng kèm danh sách khoảng đã giữ
func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.Preload("CurrentBookings").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// CreateRoom tạo phòng mới
func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.AvailabilityStatus == "" {
		room.AvailabilityStatus = constants.RoomStatusAvailable
	}
	if err := room.ValidateStatus(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Trạng thái phòng không hợp lệ", err)
	}
	if err := s.db.Create(room).Error; err != nil {
		return err
	}
	s.invalidateCache(ctx)
	s.logger.Info("Tạo phòng %d (%s)", room.ID, room.Name)
	return nil
}

// UpdateRoom cập nhật thông tin mô tả của phòng, không đụng vào lịch
func (s *RoomService) UpdateRoom(ctx context.Context, roomID uint, update *models.Room) (*models.Room, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(room).Select("name", "max_count", "beds", "baths",
		"phone_number", "rent_per_day", "type", "description", "hotel_id").
		Updates(update).Error; err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return room, nil
}

// ChangeStatus đổi trạng thái khả dụng của phòng. Phòng đang bảo trì
// không nhận đặt phòng mới, các đặt phòng hiện có giữ nguyên.
func (s *RoomService) ChangeStatus(ctx context.Context, roomID uint, status string) (*models.Room, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	room.AvailabilityStatus = status
	if err := room.ValidateStatus(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Trạng thái phòng không hợp lệ", err)
	}
	if err := s.db.Model(room).Update("availability_status", status).Error; err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	s.logger.Info("Phòng %d chuyển trạng thái %s", roomID, status)
	return room, nil
}

// SearchAvailable tìm phòng trống trong khoảng [checkin, checkout),
// lọc thêm theo loại phòng và số khách nếu có.
func (s *RoomService) SearchAvailable(ctx context.Context, checkin, checkout time.Time, roomType string, guests int) ([]models.Room, error) {
	if !checkin.Before(checkout) {
		return nil, apperrors.ErrInvalidInterval
	}

	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	var available []models.Room
	for _, room := range rooms {
		if room.AvailabilityStatus != constants.RoomStatusAvailable {
			continue
		}
		if roomType != "" && room.Type != roomType {
			continue
		}
		if guests > 0 && guests > room.MaxCount {
			continue
		}
		if HasConflict(room.CurrentBookings, checkin, checkout, 0) {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

// BookingStats là thống kê đặt phòng cho dashboard quản trị
type BookingStats struct {
	Total     int64   `json:"total"`
	Pending   int64   `json:"pending"`
	Confirmed int64   `json:"confirmed"`
	Canceled  int64   `json:"canceled"`
	Revenue   float64 `json:"revenue"`
}

// Stats tổng hợp số lượng đặt phòng theo trạng thái và doanh thu từ các
// bút toán tích điểm đã hoàn tất.
func (s *RoomService) Stats() (*BookingStats, error) {
	var stats BookingStats
	statusCounts := map[string]*int64{
		constants.BookingStatusPending:   &stats.Pending,
		constants.BookingStatusConfirmed: &stats.Confirmed,
		constants.BookingStatusCanceled:  &stats.Canceled,
	}
	for status, target := range statusCounts {
		if err := s.db.Model(&models.Booking{}).Where("status = ?", status).Count(target).Error; err != nil {
			return nil, err
		}
	}
	stats.Total = stats.Pending + stats.Confirmed + stats.Canceled

	if err := s.db.Model(&models.LoyaltyTransaction{}).
		Where("type = ? AND status = ?", constants.TransactionTypeEarn, constants.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// RevenuePoint là doanh thu gộp theo một mốc thời gian
type RevenuePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// RevenueSeries gộp doanh thu đã xác nhận theo ngày hoặc theo tháng.
// Gộp ở tầng Go để không phụ thuộc hàm ngày của từng DB.
func (s *RoomService) RevenueSeries(groupBy string) ([]RevenuePoint, error) {
	layout := "2006-01-02"
	if groupBy == "month" {
		layout = "2006-01"
	}

	var entries []models.LoyaltyTransaction
	if err := s.db.Where("type = ? AND status = ?",
		constants.TransactionTypeEarn, constants.TransactionStatusCompleted).
		Order("created_at").Find(&entries).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	var order []string
	for _, entry := range entries {
		period := entry.CreatedAt.Format(layout)
		if _, seen := totals[period]; !seen {
			order = append(order, period)
		}
		totals[period] += entry.Amount
	}

	series := make([]RevenuePoint, 0, len(order))
	for _, period := range order {
		series = append(series, RevenuePoint{Period: period, Revenue: totals[period]})
	}
	return series, nil
}

// RecentBookings trả về các đặt phòng mới nhất cho dashboard
func (s *RoomService) RecentBookings(limit int) ([]models.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var bookings []models.Booking
	if err := s.db.Preload("Room").Order("created_at DESC, id DESC").Limit(limit).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// BookedDates trả về các khoảng đã giữ của một phòng, dùng cho lịch client
func (s *RoomService) BookedDates(roomID uint) ([]models.BookedInterval, error) {
	if _, err := s.GetRoom(roomID); err != nil {
		return nil, err
	}
	var intervals []models.BookedInterval
	if err := s.db.Where("room_id = ?", roomID).Order("checkin").Find(&intervals).Error; err != nil {
		return nil, err
	}
	return intervals, nil
}
