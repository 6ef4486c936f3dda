package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SizeLimit caps the request body at maxBodyBytes. Reading past the cap makes
// the JSON bind fail with http.MaxBytesError, which surfaces as 413. Resume
// files travel base64-encoded inside the application create body, so the cap
// is what bounds upload size.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
