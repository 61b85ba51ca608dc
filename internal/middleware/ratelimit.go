package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// PublicRateLimit limita criações de agendamento público por IP + slug.
// Sem Redis configurado o middleware vira no-op: indisponibilidade do
// limitador nunca derruba a API.
func PublicRateLimit(rdb *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rl:public:%s:%s", c.Param("slug"), c.ClientIP())
		ctx := c.Request.Context()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Println("rate limit redis error:", err)
			c.Next()
			return
		}

		if n == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}

		if n > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
			return
		}

		c.Next()
	}
}
