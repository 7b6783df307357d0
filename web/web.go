// Package web provides the web server of the catalog, including routing,
// templates, sessions and background job scheduling.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/kinocourses/kinocourses/config"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/util/common"
	"github.com/kinocourses/kinocourses/web/controller"
	"github.com/kinocourses/kinocourses/web/entity"
	"github.com/kinocourses/kinocourses/web/job"
	"github.com/kinocourses/kinocourses/web/locale"
	"github.com/kinocourses/kinocourses/web/middleware"
	"github.com/kinocourses/kinocourses/web/service"
	"github.com/kinocourses/kinocourses/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

var startTime = time.Now()

const shutdownTimeout = 10 * time.Second

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

// wrapAssetsFileInfo reports the process start as modification time so
// embedded assets get a usable Last-Modified header.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the catalog web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index  *controller.IndexController
	course *controller.CourseController

	userService    service.UserService
	settingService service.SettingService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
	}
}

// getHtmlFiles lists the template files under the local web/html directory.
// Used only in debug mode so templates can be edited without rebuilding.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses the embedded templates of every html/ folder.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"i18n": func(loc *i18n.Localizer, key string, params ...string) string {
			return locale.Localize(loc, key, params...)
		},
		"datetime": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("Mon Jan _2 15:04:05 2006")
		},
	}
}

func (s *Server) getSecret() ([]byte, error) {
	if secret := config.GetSecret(); secret != "" {
		return []byte(secret), nil
	}
	return s.settingService.GetSecret()
}

func sessionOptions() session.Options {
	return session.Options{
		MaxAge:         time.Duration(config.GetSessionMaxAge()) * time.Minute,
		RememberMaxAge: time.Duration(config.GetRememberDays()) * 24 * time.Hour,
		Secure:         config.IsSecureCookie(),
	}
}

// initRouter initializes Gin, registers middleware, templates, static assets,
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	funcMap := templateFuncs()
	engine.SetFuncMap(funcMap)

	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
		engine.StaticFS("/assets", http.FS(os.DirFS("web/assets")))
	} else {
		tpl, err := s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
		engine.StaticFS("/assets", http.FS(&wrapAssetsFS{FS: assetsFS}))
	}

	secret, err := s.getSecret()
	if err != nil {
		return nil, err
	}
	opts := sessionOptions()
	engine.Use(session.Middleware(session.NewStore(secret, opts), &s.userService)...)
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.RequestLogMiddleware())
	engine.Use(middleware.CSRFMiddleware(controller.CSRFFailed))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, entity.Msg{Success: true, Msg: "ok"})
	})

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, opts)
	s.course = controller.NewCourseController(g)

	engine.NoRoute(controller.NotFound)

	return engine, nil
}

// startTask schedules background jobs.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@daily", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	certFile, keyFile := config.GetCertFile(), config.GetKeyFile()
	if certFile != "" && keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			listener = tls.NewListener(listener, &tls.Config{Certificates: []tls.Certificate{cert}})
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		// requests in flight see Stop through their context
		BaseContext: func(net.Listener) context.Context { return s.ctx },
	}

	go func() {
		defer common.Recover("web server")
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
		if errors.Is(err2, net.ErrClosed) {
			err2 = nil
		}
	}
	return common.Combine(err1, err2)
}
