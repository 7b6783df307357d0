package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kinocourses/kinocourses/database/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[int]*model.User

func (f fakeUsers) GetUserById(id int) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("no such user")
}

func newEngine(users fakeUsers, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware(NewStore([]byte("0123456789abcdef0123456789abcdef"), opts), users)...)
	engine.GET("/login/:remember", func(c *gin.Context) {
		if err := SetLoginUser(c, users[1], c.Param("remember") == "yes", opts); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/me", func(c *gin.Context) {
		if user := GetLoginUser(c); user != nil {
			c.String(http.StatusOK, user.Email)
			return
		}
		c.Status(http.StatusUnauthorized)
	})
	engine.GET("/logout", func(c *gin.Context) {
		_ = ClearSession(c)
		c.Status(http.StatusOK)
	})
	return engine
}

func serve(engine *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	require.Fail(t, "no session cookie")
	return nil
}

var defaultOpts = Options{MaxAge: time.Hour, RememberMaxAge: 48 * time.Hour}

func TestLoginResolvesUser(t *testing.T) {
	users := fakeUsers{1: {Id: 1, Email: "a@example.com"}}
	engine := newEngine(users, defaultOpts)

	ck := sessionCookie(t, serve(engine, "/login/no"))
	assert.Zero(t, ck.MaxAge)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)

	rec := serve(engine, "/me", ck)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@example.com", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(engine, "/me").Code)
}

func TestRememberMeSetsMaxAge(t *testing.T) {
	users := fakeUsers{1: {Id: 1, Email: "a@example.com"}}
	engine := newEngine(users, defaultOpts)

	ck := sessionCookie(t, serve(engine, "/login/yes"))
	assert.Equal(t, int((48 * time.Hour).Seconds()), ck.MaxAge)
}

func TestExpiredLoginIsIgnored(t *testing.T) {
	users := fakeUsers{1: {Id: 1, Email: "a@example.com"}}
	engine := newEngine(users, Options{MaxAge: -time.Minute})

	ck := sessionCookie(t, serve(engine, "/login/no"))
	assert.Equal(t, http.StatusUnauthorized, serve(engine, "/me", ck).Code)
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	users := fakeUsers{1: {Id: 1, Email: "a@example.com"}}
	engine := newEngine(users, defaultOpts)

	ck := sessionCookie(t, serve(engine, "/login/no"))
	ck.Value = "x" + ck.Value
	assert.Equal(t, http.StatusUnauthorized, serve(engine, "/me", ck).Code)
}

func TestDeletedUserIsIgnored(t *testing.T) {
	users := fakeUsers{1: {Id: 1, Email: "a@example.com"}}
	engine := newEngine(users, defaultOpts)

	ck := sessionCookie(t, serve(engine, "/login/no"))
	delete(users, 1)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, "/me", ck).Code)
}

func TestClearSession(t *testing.T) {
	users := fakeUsers{1: {Id: 1, Email: "a@example.com"}}
	engine := newEngine(users, defaultOpts)

	ck := sessionCookie(t, serve(engine, "/login/no"))
	cleared := sessionCookie(t, serve(engine, "/logout", ck))
	assert.Less(t, cleared.MaxAge, 0)

	// without a login the clear is a no-op
	assert.Equal(t, http.StatusOK, serve(engine, "/logout").Code)
}
