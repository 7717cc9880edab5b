package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/Dton04/deployBEHotel/models"
)

// BookingEvent là thông điệp đẩy qua websocket cho dashboard lễ tân
type BookingEvent struct {
	Event     string    `json:"event"`
	BookingID uint      `json:"bookingId"`
	RoomID    uint      `json:"roomId"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

// BroadcastBookingEvent đẩy sự kiện đặt phòng tới mọi client đang kết nối.
// Lỗi broadcast chỉ log, không làm hỏng request.
func BroadcastBookingEvent(ws *melody.Melody, event string, booking *models.Booking) {
	if ws == nil || booking == nil {
		return
	}

	payload, err := json.Marshal(BookingEvent{
		Event:     event,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		Status:    booking.Status,
		At:        time.Now(),
	})
	if err != nil {
		log.Printf("Lỗi khi đóng gói sự kiện đặt phòng: %v", err)
		return
	}

	if err := ws.Broadcast(payload); err != nil {
		log.Printf("Lỗi khi broadcast sự kiện đặt phòng: %v", err)
	}
}

// HandleWS nâng cấp kết nối websocket cho client theo dõi đặt phòng
func HandleWS(ws *melody.Melody) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ws.HandleRequest(c.Writer, c.Request); err != nil {
			log.Printf("Lỗi khi mở kết nối websocket: %v", err)
		}
	}
}
