package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Dton04/deployBEHotel/dto"
	"github.com/Dton04/deployBEHotel/models"
	"github.com/Dton04/deployBEHotel/response"
	"github.com/Dton04/deployBEHotel/services"
	"github.com/Dton04/deployBEHotel/validator"
)

// RoomController xử lý các endpoint phòng
type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

// GetAllRooms trả về toàn bộ phòng
func (ctl *RoomController) GetAllRooms(c *gin.Context) {
	rooms, err := ctl.rooms.ListRooms(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, rooms)
}

// SearchRooms tìm phòng trống trong một khoảng ngày
func (ctl *RoomController) SearchRooms(c *gin.Context) {
	var query dto.SearchRoomsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Tham số tìm kiếm không hợp lệ")
		return
	}

	checkin, err := parseDate(query.Checkin)
	if err != nil {
		response.BadRequest(c, "Ngày nhận phòng không hợp lệ")
		return
	}
	checkout, err := parseDate(query.Checkout)
	if err != nil {
		response.BadRequest(c, "Ngày trả phòng không hợp lệ")
		return
	}

	rooms, err := ctl.rooms.SearchAvailable(c.Request.Context(), checkin, checkout, query.Type, query.Guests)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, rooms)
}

// GetRoomDetail trả về chi tiết một phòng
func (ctl *RoomController) GetRoomDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	room, err := ctl.rooms.GetRoom(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, room)
}

// GetRoomBookedDates trả về lịch đã giữ của một phòng
func (ctl *RoomController) GetRoomBookedDates(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	intervals, err := ctl.rooms.BookedDates(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, intervals)
}

// CreateRoom tạo phòng mới
func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	room := models.Room{
		Name:        req.Name,
		MaxCount:    req.MaxCount,
		Beds:        req.Beds,
		Baths:       req.Baths,
		PhoneNumber: req.PhoneNumber,
		RentPerDay:  req.RentPerDay,
		Type:        req.Type,
		Description: req.Description,
		HotelID:     req.HotelID,
	}
	if err := validator.ValidateRoom(&room); err != nil {
		response.HandleError(c, err)
		return
	}

	if err := ctl.rooms.CreateRoom(c.Request.Context(), &room); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, room)
}

// UpdateRoom cập nhật thông tin phòng
func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	update := models.Room{
		Name:        req.Name,
		MaxCount:    req.MaxCount,
		Beds:        req.Beds,
		Baths:       req.Baths,
		PhoneNumber: req.PhoneNumber,
		RentPerDay:  req.RentPerDay,
		Type:        req.Type,
		Description: req.Description,
		HotelID:     req.HotelID,
	}
	if err := validator.ValidateRoom(&update); err != nil {
		response.HandleError(c, err)
		return
	}

	room, err := ctl.rooms.UpdateRoom(c.Request.Context(), id, &update)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, room)
}

// ChangeRoomStatus đổi trạng thái khả dụng của phòng
func (ctl *RoomController) ChangeRoomStatus(c *gin.Context) {
	var req dto.ChangeRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	room, err := ctl.rooms.ChangeStatus(c.Request.Context(), req.RoomID, req.Status)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, room)
}

// GetStats trả về thống kê đặt phòng cho dashboard
func (ctl *RoomController) GetStats(c *gin.Context) {
	stats, err := ctl.rooms.Stats()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, stats)
}

// GetRevenueSeries trả về doanh thu đã xác nhận gộp theo ngày hoặc tháng
func (ctl *RoomController) GetRevenueSeries(c *gin.Context) {
	groupBy := c.DefaultQuery("groupBy", "day")
	if groupBy != "day" && groupBy != "month" {
		response.BadRequest(c, "groupBy phải là day hoặc month")
		return
	}

	series, err := ctl.rooms.RevenueSeries(groupBy)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, series)
}

// GetRecentBookings trả về các đặt phòng mới nhất
func (ctl *RoomController) GetRecentBookings(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if parsed, err := parseIntQuery(v); err == nil {
			limit = parsed
		}
	}

	bookings, err := ctl.rooms.RecentBookings(limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, dto.ToBookingResponse(&bookings[i]))
	}
	response.Success(c, resp)
}
