package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/api/dto/common"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/ratelimit"
	"github.com/osa911/contactform/internal/utils"

	"github.com/gin-gonic/gin"
)

// Admitter decides whether a client may make another request
type Admitter interface {
	Allow(key string) ratelimit.Decision
	Policy() ratelimit.Policy
}

// RateLimitMiddleware admits or rejects a request per client key before
// anything else on the route runs. Rejected requests stop here.
func RateLimitMiddleware(limiter Admitter, logger *logging.Logger) gin.HandlerFunc {
	policy := limiter.Policy()
	rejection := common.NewErrorResponse("Rate limit exceeded: " + policy.String())

	return func(c *gin.Context) {
		key := utils.ClientKey(c)
		decision := limiter.Allow(key)

		// Set rate limit headers
		c.Header(constants.HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
		c.Header(constants.HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
		c.Header(constants.HeaderRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))
			logger.Debug("Rate limit rejected %s on %s, retry in %s", key, c.Request.URL.Path, decision.RetryAfter)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, rejection)
			return
		}

		c.Next()
	}
}

// retryAfterSeconds rounds up so clients never retry early
func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
