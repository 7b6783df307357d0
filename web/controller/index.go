package controller

import (
	"net/http"
	"text/template"

	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/web/form"
	"github.com/kinocourses/kinocourses/web/service"
	"github.com/kinocourses/kinocourses/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the course listing, login and logout.
type IndexController struct {
	BaseController

	courseService  service.CourseService
	userService    service.UserService
	sessionOptions session.Options
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, opts session.Options) *IndexController {
	a := &IndexController{
		sessionOptions: opts,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", a.logout)

	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
}

// index lists every course.
func (a *IndexController) index(c *gin.Context) {
	courses, err := a.courseService.GetCourses()
	if err != nil {
		internalError(c, "get courses failed:", err)
		return
	}
	html(c, "index.html", "pages.index.title", gin.H{"courses": courses})
}

func (a *IndexController) loginPage(c *gin.Context) {
	a.renderLogin(c, form.Empty(), false)
}

func (a *IndexController) renderLogin(c *gin.Context, f *form.Result, failed bool) {
	html(c, "login.html", "pages.login.title", gin.H{
		"form":         f,
		"errors":       translateErrors(c, f.Errors),
		"login_failed": failed,
		"csrf_token":   session.CSRFToken(c),
	})
}

// login authenticates the submitted credentials and starts a session.
func (a *IndexController) login(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		a.renderLogin(c, form.Empty(), false)
		return
	}
	f := form.Validate(form.LoginSchema, c.Request.PostForm)
	if !f.Valid() {
		a.renderLogin(c, f, false)
		return
	}

	email := f.String("email")
	safeEmail := template.HTMLEscapeString(email)
	user := a.userService.CheckUser(email, f.String("password"))
	if user == nil {
		logger.Warningf("wrong email: \"%s\", IP: \"%s\"", safeEmail, getRemoteIp(c))
		a.renderLogin(c, f, true)
		return
	}

	if err := session.SetLoginUser(c, user, f.Bool("remember_me"), a.sessionOptions); err != nil {
		internalError(c, "Unable to save session:", err)
		return
	}

	logger.Infof("%s logged in successfully, Ip Address: %s", safeEmail, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/")
}

// logout clears the session. It is a no-op redirect when nobody is logged in.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out successfully", template.HTMLEscapeString(user.Email))
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusFound, "/")
}
