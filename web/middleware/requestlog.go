package middleware

import (
	"strings"
	"time"

	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/web/session"

	"github.com/gin-gonic/gin"
)

// RequestLogMiddleware writes one line per request through the application
// logger, including the logged-in user when there is one.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldSkipLog(c.Request.URL.Path) {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		who := "-"
		if user := session.GetLoginUser(c); user != nil {
			who = user.Email
		}
		logger.Debugf("%s %s %d %s user=%s ip=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), who, c.ClientIP())
	}
}

func shouldSkipLog(path string) bool {
	return path == "/healthz" || strings.HasPrefix(path, "/assets/")
}
