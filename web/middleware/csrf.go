package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/web/session"

	"github.com/gin-gonic/gin"
)

const (
	CSRFFormField  = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRFMiddleware rejects state-changing requests whose anti-forgery token is
// missing or differs from the session's. It runs before any handler so a
// rejected submission is never validated or persisted. onFail renders the
// rejection and must abort.
func CSRFMiddleware(onFail gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}

		token := c.PostForm(CSRFFormField)
		if token == "" {
			token = c.GetHeader(CSRFHeaderName)
		}
		expected := session.ExpectedCSRFToken(c)

		if token == "" || expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			logger.Warningf("csrf check failed: %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
			onFail(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
