package middleware

import (
	"github.com/gin-gonic/gin"
)

var baseSecurityHeaders = map[string]string{
	"X-Frame-Options":                   "DENY",
	"X-Content-Type-Options":            "nosniff",
	"Referrer-Policy":                   "strict-origin-when-cross-origin",
	"Permissions-Policy":                "camera=(), microphone=(), geolocation=(), interest-cohort=()",
	"X-Permitted-Cross-Domain-Policies": "none",
	"Content-Security-Policy":           "default-src 'none'; frame-ancestors 'none'",
	"Cache-Control":                     "no-store, no-cache, must-revalidate, private",
	"Pragma":                            "no-cache",
}

// SecurityHeadersMiddleware adds security headers to all HTTP responses.
// HSTS is only sent in production where the API sits behind TLS.
func SecurityHeadersMiddleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, value := range baseSecurityHeaders {
			c.Header(name, value)
		}
		if production {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
