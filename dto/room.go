package dto

// CreateRoomRequest là DTO cho request tạo phòng
type CreateRoomRequest struct {
	Name        string  `json:"name" binding:"required"`
	MaxCount    int     `json:"maxcount" binding:"required"`
	Beds        int     `json:"beds"`
	Baths       int     `json:"baths"`
	PhoneNumber string  `json:"phonenumber"`
	RentPerDay  float64 `json:"rentperday" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Description string  `json:"description"`
	HotelID     *uint   `json:"hotelId"`
}

// ChangeRoomStatusRequest là DTO cho request đổi trạng thái phòng
type ChangeRoomStatusRequest struct {
	RoomID uint   `json:"roomId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// SearchRoomsQuery là query tìm phòng trống trong một khoảng ngày
type SearchRoomsQuery struct {
	Checkin  string `form:"checkin"`  // yyyy-mm-dd
	Checkout string `form:"checkout"` // yyyy-mm-dd
	Type     string `form:"type"`
	Guests   int    `form:"guests"`
}
