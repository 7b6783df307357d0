package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/kinocourses/kinocourses/config"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/web/entity"
	"github.com/kinocourses/kinocourses/web/form"
	"github.com/kinocourses/kinocourses/web/locale"
	"github.com/kinocourses/kinocourses/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a page with status 200.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

// htmlStatus renders a page. title is a translation key.
func htmlStatus(c *gin.Context, status int, name string, title string, data gin.H) {
	c.HTML(status, name, getContext(c, title, data))
}

// getContext adds what every page template expects to data.
func getContext(c *gin.Context, title string, h gin.H) gin.H {
	a := gin.H{
		"title":       I18nWeb(c, title),
		"loc":         locale.GetLocalizer(c),
		"user":        session.GetLoginUser(c),
		"cur_ver":     config.GetVersion(),
		"request_uri": c.Request.RequestURI,
		"text":        "",
		"form":        form.Empty(),
		"errors":      map[string][]string{},
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// errorPage renders the generic error page and aborts the chain.
func errorPage(c *gin.Context, status int, msgKey string) {
	htmlStatus(c, status, "error.html", "pages.error.title", gin.H{
		"status":  status,
		"message": I18nWeb(c, msgKey),
	})
	c.Abort()
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	htmlStatus(c, http.StatusNotFound, "404.html", "pages.notFound.title", nil)
	c.Abort()
}

// CSRFFailed renders the rejection of a submission with a bad anti-forgery token.
func CSRFFailed(c *gin.Context) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "pages.error.csrf"))
		c.Abort()
		return
	}
	errorPage(c, http.StatusBadRequest, "pages.error.csrf")
}

func internalError(c *gin.Context, msg string, err error) {
	logger.Error(msg, err)
	errorPage(c, http.StatusInternalServerError, "pages.error.internal")
}

// translateErrors turns field errors into messages in the request's language.
func translateErrors(c *gin.Context, errs form.FieldErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for field, list := range errs {
		for _, fe := range list {
			out[field] = append(out[field], I18nWeb(c, fe.MessageID(), "Param=="+fe.Param))
		}
	}
	return out
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
