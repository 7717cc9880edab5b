package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Dton04/deployBEHotel/constants"
	"github.com/Dton04/deployBEHotel/controllers"
	middlewares "github.com/Dton04/deployBEHotel/middleware"
	"github.com/Dton04/deployBEHotel/services"
	"github.com/Dton04/deployBEHotel/services/logger"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) {

	l := logger.NewDefaultLogger(logger.InfoLevel)

	bookingService := services.NewBookingService(db, l)
	discountService := services.NewDiscountService(db, l)
	loyaltyService := services.NewLoyaltyService(db, l)
	paymentService := services.NewPaymentService(db, loyaltyService, l)
	roomService := services.NewRoomService(db, redisCli, l)

	bookingController := controllers.NewBookingController(bookingService, discountService, paymentService, m)
	roomController := controllers.NewRoomController(roomService)
	discountController := controllers.NewDiscountController(discountService)
	paymentController := controllers.NewPaymentController(paymentService, m)
	rewardController := controllers.NewRewardController(loyaltyService)

	router.GET("/ws", controllers.HandleWS(m))

	v1 := router.Group("/api/v1")

	v1.GET("/rooms", roomController.GetAllRooms)
	v1.GET("/rooms/search", roomController.SearchRooms)
	v1.GET("/rooms/:id", roomController.GetRoomDetail)
	v1.GET("/rooms/:id/bookedDates", roomController.GetRoomBookedDates)
	v1.POST("/rooms", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), roomController.CreateRoom)
	v1.PUT("/rooms/:id", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), roomController.UpdateRoom)
	v1.PUT("/roomStatus", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), roomController.ChangeRoomStatus)

	v1.POST("/bookings", middlewares.OptionalAuth(), bookingController.CreateBooking)
	v1.POST("/bookings/validate", bookingController.ValidateBooking)
	v1.GET("/bookings", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), bookingController.GetAllBookings)
	v1.GET("/bookings/history", bookingController.GetBookingHistory)
	v1.GET("/bookings/:id", bookingController.GetBooking)
	v1.GET("/rooms/:id/bookings", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), bookingController.GetBookingsByRoom)
	v1.PUT("/bookings/:id/cancel", bookingController.CancelBooking)
	v1.PUT("/bookings/:id/extend", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), bookingController.ExtendStay)
	v1.PUT("/bookings/:id/note", bookingController.UpdateNote)
	v1.PUT("/bookings/:id/paymentMethod", bookingController.UpdatePaymentMethod)
	v1.PUT("/assignRoom", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), bookingController.AssignRoom)
	v1.GET("/bookingStats", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), roomController.GetStats)
	v1.GET("/recentBookings", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), roomController.GetRecentBookings)
	v1.GET("/revenueStats", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), roomController.GetRevenueSeries)

	v1.PUT("/payments/:id/confirm", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), paymentController.ConfirmPayment)
	v1.GET("/payments/:id/deadline", paymentController.CheckPaymentDeadline)
	v1.POST("/payments/intent", paymentController.CreatePaymentIntent)
	v1.POST("/payments/callback", paymentController.GatewayCallback)

	v1.GET("/discount", discountController.GetDiscounts)
	v1.GET("/discount/eligible", middlewares.AuthMiddleware(), discountController.GetEligibleDiscounts)
	v1.POST("/discount/preview", middlewares.OptionalAuth(), discountController.PreviewDiscount)
	v1.POST("/discount/apply", middlewares.OptionalAuth(), discountController.ApplyDiscount)
	v1.POST("/discount", middlewares.AuthMiddleware(constants.RoleAdmin), discountController.CreateDiscount)
	v1.PUT("/discount/:id", middlewares.AuthMiddleware(constants.RoleAdmin), discountController.UpdateDiscount)
	v1.DELETE("/discount/:id", middlewares.AuthMiddleware(constants.RoleAdmin), discountController.DeleteDiscount)

	v1.GET("/rewards", middlewares.AuthMiddleware(), rewardController.GetRewards)
	v1.GET("/rewards/all", middlewares.AuthMiddleware(constants.RoleAdmin), rewardController.GetAllRewards)
	v1.POST("/rewards", middlewares.AuthMiddleware(constants.RoleAdmin), rewardController.CreateReward)
	v1.PUT("/rewards/:id", middlewares.AuthMiddleware(constants.RoleAdmin), rewardController.UpdateReward)
	v1.DELETE("/rewards/:id", middlewares.AuthMiddleware(constants.RoleAdmin), rewardController.DeleteReward)
	v1.POST("/rewards/redeem", middlewares.AuthMiddleware(), rewardController.RedeemReward)
	v1.GET("/vouchers", middlewares.AuthMiddleware(), rewardController.GetVouchers)
	v1.GET("/points/balance", middlewares.AuthMiddleware(), rewardController.GetBalance)
	v1.GET("/points/history", middlewares.AuthMiddleware(), rewardController.GetHistory)
	v1.POST("/points/accrue/:id", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin), rewardController.AccruePoints)
}
