package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dton04/deployBEHotel/response"
	"github.com/Dton04/deployBEHotel/services"
)

// AuthMiddleware xử lý authentication, roles rỗng nghĩa là chỉ cần đăng nhập
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		// Lưu thông tin user vào context
		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// OptionalAuth đọc token nếu có, không chặn request khách vãng lai.
// Các endpoint đặt phòng phục vụ cả khách chưa đăng nhập.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if userID, userRole, err := services.GetUserIDFromToken(tokenString); err == nil {
				c.Set("userID", userID)
				c.Set("userRole", userRole)
			}
		}
		c.Next()
	}
}

// UserIDFromContext lấy userID đã được middleware lưu, 0 nếu chưa đăng nhập
func UserIDFromContext(c *gin.Context) uint {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
