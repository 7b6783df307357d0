// Package session keeps the login identity and the anti-forgery token in a
// signed cookie.
package session

import (
	"net/http"
	"time"

	"github.com/kinocourses/kinocourses/database/model"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/util/random"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	CookieName = "kinocourses"

	loginUserId  = "LOGIN_USER_ID"
	loginExpires = "LOGIN_EXPIRES"
	csrfToken    = "CSRF_TOKEN"

	// gin context key of the user resolved for the current request
	contextUser = "login_user"
)

// UserLoader resolves a user id stored in the cookie.
type UserLoader interface {
	GetUserById(id int) (*model.User, error)
}

// Options controls login lifetimes.
type Options struct {
	// MaxAge bounds a login made without "remember me"; its cookie expires
	// with the browser session.
	MaxAge time.Duration
	// RememberMaxAge is both cookie Max-Age and login lifetime for "remember me".
	RememberMaxAge time.Duration
	Secure         bool
}

// NewStore returns a cookie store signing with secret. Cookies are
// browser-session scoped unless SetLoginUser asks for "remember me".
func NewStore(secret []byte, opts Options) sessions.Store {
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Middleware decodes the session cookie and resolves the logged-in user once
// per request. Any failure leaves the request unauthenticated.
func Middleware(store sessions.Store, users UserLoader) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		sessions.Sessions(CookieName, store),
		func(c *gin.Context) {
			if user := resolveUser(c, users); user != nil {
				c.Set(contextUser, user)
			}
			c.Next()
		},
	}
}

func resolveUser(c *gin.Context, users UserLoader) *model.User {
	s := sessions.Default(c)
	id, ok := s.Get(loginUserId).(int)
	if !ok {
		return nil
	}
	expires, ok := s.Get(loginExpires).(int64)
	if !ok || time.Now().Unix() >= expires {
		logger.Debug("session expired for user ", id)
		return nil
	}
	user, err := users.GetUserById(id)
	if err != nil {
		logger.Debug("session user lookup failed:", err)
		return nil
	}
	return user
}

// SetLoginUser starts a login for user. Without remember the cookie lives for
// the browser session and the login expires after opts.MaxAge.
func SetLoginUser(c *gin.Context, user *model.User, remember bool, opts Options) error {
	s := sessions.Default(c)

	lifetime := opts.MaxAge
	cookieOpts := sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		lifetime = opts.RememberMaxAge
		cookieOpts.MaxAge = int(opts.RememberMaxAge.Seconds())
	}
	s.Options(cookieOpts)

	// rotate the token on privilege change
	s.Set(csrfToken, random.Seq(32))
	s.Set(loginUserId, user.Id)
	s.Set(loginExpires, time.Now().Add(lifetime).Unix())
	if err := s.Save(); err != nil {
		return err
	}
	c.Set(contextUser, user)
	return nil
}

// GetLoginUser returns the user resolved for this request, or nil.
func GetLoginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(contextUser); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearSession ends the login. Calling it without a login is harmless.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	c.Set(contextUser, nil)
	return s.Save()
}

// CSRFToken returns the anti-forgery token of the session, creating it when
// absent.
func CSRFToken(c *gin.Context) string {
	s := sessions.Default(c)
	if token, ok := s.Get(csrfToken).(string); ok && token != "" {
		return token
	}
	token := random.Seq(32)
	s.Set(csrfToken, token)
	if err := s.Save(); err != nil {
		logger.Warning("Unable to save csrf token:", err)
	}
	return token
}

// ExpectedCSRFToken returns the stored token without creating one.
func ExpectedCSRFToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(csrfToken).(string)
	return token
}
