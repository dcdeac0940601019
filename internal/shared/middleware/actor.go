package middleware

import (
	"strings"

	"bookstore-jsonb/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ActorKey    = "actor"
	ActorHeader = "user"
)

// RequireActor bắt buộc header "user" cho các route ghi dữ liệu.
// Giá trị được lưu vào context dưới key ActorKey để ghi audit.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor == "" {
			response.BadRequest(c, "MISSING_ACTOR", "Header 'user' is required")
			return
		}
		c.Set(ActorKey, actor)
		c.Next()
	}
}
