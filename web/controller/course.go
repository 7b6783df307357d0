package controller

import (
	"net/http"
	"strconv"
	"text/template"

	"github.com/kinocourses/kinocourses/database"
	"github.com/kinocourses/kinocourses/database/model"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/web/form"
	"github.com/kinocourses/kinocourses/web/session"
	"github.com/kinocourses/kinocourses/web/service"

	"github.com/gin-gonic/gin"
)

// CourseController handles search, course pages and course creation.
type CourseController struct {
	BaseController

	courseService service.CourseService
}

func NewCourseController(g *gin.RouterGroup) *CourseController {
	a := &CourseController{}
	a.initRouter(g)
	return a
}

func (a *CourseController) initRouter(g *gin.RouterGroup) {
	g.GET("/search", a.search)

	courses := g.Group("/courses")
	courses.GET("", a.courses)
	courses.GET("/create", a.checkLogin, a.createPage)
	courses.POST("/create", a.checkLogin, a.create)
	courses.GET("/:id", a.course)
}

// search filters the catalog by a case-sensitive substring of name or description.
func (a *CourseController) search(c *gin.Context) {
	text, ok := c.GetQuery("text")
	if !ok {
		errorPage(c, http.StatusBadRequest, "pages.error.missingText")
		return
	}
	logger.Debugf("search %q from %s", template.HTMLEscapeString(text), getRemoteIp(c))

	courses, err := a.courseService.SearchCourses(text)
	if err != nil {
		internalError(c, "search courses failed:", err)
		return
	}
	html(c, "search.html", "pages.search.title", gin.H{
		"text":    text,
		"courses": courses,
	})
}

func (a *CourseController) courses(c *gin.Context) {
	c.String(http.StatusOK, "All my courses")
}

func (a *CourseController) course(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		NotFound(c)
		return
	}
	course, err := a.courseService.GetCourse(id)
	if database.IsNotFound(err) {
		NotFound(c)
		return
	} else if err != nil {
		internalError(c, "get course failed:", err)
		return
	}
	// the course name replaces the translated title
	html(c, "course.html", "pages.index.title", gin.H{"course": course, "title": course.Name})
}

func (a *CourseController) createPage(c *gin.Context) {
	a.renderCreate(c, form.Empty())
}

func (a *CourseController) renderCreate(c *gin.Context, f *form.Result) {
	html(c, "create_course.html", "pages.create.title", gin.H{
		"form":       f,
		"errors":     translateErrors(c, f.Errors),
		"csrf_token": session.CSRFToken(c),
	})
}

func (a *CourseController) create(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		a.renderCreate(c, form.Empty())
		return
	}
	f := form.Validate(form.CourseSchema, c.Request.PostForm)
	start, end := f.Time("date_start"), f.Time("date_end")
	if start != nil && end != nil && end.Before(*start) {
		f.AddError("date_end", "after_start", "")
	}
	if !f.Valid() {
		a.renderCreate(c, f)
		return
	}

	course := &model.Course{
		Name:        f.String("name"),
		Description: f.String("description"),
		Cover:       f.String("cover"),
		IsNew:       f.Bool("is_new"),
		DateStart:   start,
		DateEnd:     end,
	}
	if err := a.courseService.AddCourse(course); err != nil {
		internalError(c, "add course failed:", err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
