package jobs

import (
	"encoding/json"
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// DeadlineSweeper hủy các đặt phòng chuyển khoản quá hạn thanh toán
type DeadlineSweeper interface {
	SweepExpiredDeadlines(now time.Time) (int, error)
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody, sweeper DeadlineSweeper) error {
	// Quét mỗi phút: hạn chuyển khoản chỉ 5 phút nên khoảng giữ chết ngắn
	_, err := c.AddFunc("* * * * *", func() {
		now := time.Now()
		expired, err := sweeper.SweepExpiredDeadlines(now)
		if err != nil {
			log.Printf("Lỗi khi quét đặt phòng quá hạn thanh toán: %v", err)
			return
		}
		if expired == 0 {
			return
		}

		log.Printf("Đã hủy %d đặt phòng quá hạn thanh toán lúc %v", expired, now)
		if m != nil {
			payload, err := json.Marshal(map[string]interface{}{
				"event":   "bookings_expired",
				"expired": expired,
				"at":      now,
			})
			if err == nil {
				if err := m.Broadcast(payload); err != nil {
					log.Printf("Lỗi khi broadcast sự kiện quá hạn: %v", err)
				}
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
