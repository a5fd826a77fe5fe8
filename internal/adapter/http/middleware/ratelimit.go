package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drashti-2005/task-manager-sub000/pkg/apierrors"
	"github.com/drashti-2005/task-manager-sub000/pkg/ratelimit"
)

// RateLimitMiddleware throttles per actor and route. Unauthenticated
// requests fall back to the client IP, so the login and forgot-password
// endpoints are covered too.
func RateLimitMiddleware(store ratelimit.Store, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetActor(c).ID
		if key == "" {
			key = c.ClientIP()
		}
		key += "|" + c.FullPath()

		count, reset := store.Incr(key, window)
		if count > limit {
			retryAfter := int64(time.Until(reset).Seconds()) + 1
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.CreateError(apierrors.MsgTooManyRequests, GetLang(c)))
			return
		}
		c.Next()
	}
}
