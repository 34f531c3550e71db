package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OriginChecker reports whether a browser origin may use the API. An empty
// list or "*" allows every origin.
type OriginChecker struct {
	allowAll bool
	allowed  map[string]bool
}

// NewOriginChecker builds a checker from the configured origins
func NewOriginChecker(allowedOrigins []string) *OriginChecker {
	oc := &OriginChecker{
		allowAll: len(allowedOrigins) == 0,
		allowed:  make(map[string]bool, len(allowedOrigins)),
	}
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			oc.allowAll = true
		}
		oc.allowed[o] = true
	}
	return oc
}

// Allowed reports whether origin is accepted
func (oc *OriginChecker) Allowed(origin string) bool {
	return oc.allowAll || oc.allowed[origin]
}

// AllowAll reports whether every origin is accepted
func (oc *OriginChecker) AllowAll() bool {
	return oc.allowAll
}

// CORS adds CORS headers to responses. Listed origins are echoed back; see
// NewOriginChecker for the defaults.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := NewOriginChecker(allowedOrigins)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case origin == "" && origins.AllowAll():
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && origins.Allowed(origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
