package utils

import (
	"github.com/gin-gonic/gin"
)

// ClientKey identifies the requester for rate limiting.
//
// It is the address gin resolves for the request. With no trusted proxies
// configured that is the immediate peer, and forwarded headers are ignored.
// Behind a proxy every client then shares the proxy's key unless the
// deployer lists the proxy in TRUSTED_PROXIES.
func ClientKey(c *gin.Context) string {
	return c.ClientIP()
}
