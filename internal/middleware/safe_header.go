// Package middleware holds the gin middleware shared by every route: security
// headers, body size limits and per-IP rate limiting.
package middleware

import "github.com/gin-gonic/gin"

// SafeHeader adds security-related headers to each response. The API serves
// JSON only, so framing and sniffing are denied outright.
func SafeHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Next()
	}
}
