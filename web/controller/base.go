// Package controller provides the HTTP handlers of the catalog: the course
// listing, search, detail and creation pages, and login/logout.
package controller

import (
	"net/http"

	"github.com/kinocourses/kinocourses/web/locale"
	"github.com/kinocourses/kinocourses/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers, including authentication checks.
type BaseController struct{}

// checkLogin stops unauthenticated requests before the handler runs.
// Browsers are sent to the login page, XHR callers get 401.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.loginAgain"))
		} else {
			c.Redirect(http.StatusFound, "/login")
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// I18nWeb translates key for the language of the request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.Localize(locale.GetLocalizer(c), name, params...)
}
