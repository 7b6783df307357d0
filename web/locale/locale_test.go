package locale

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTranslations = fstest.MapFS{
	"translation/translate.en_US.toml": {Data: []byte(`"hello" = "Hello, {{.Name}}"`)},
	"translation/translate.ru_RU.toml": {Data: []byte(`"hello" = "Привет, {{.Name}}"`)},
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, InitLocalizer(testTranslations))

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(LocalizerMiddleware())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Localize(GetLocalizer(c), "hello", "Name==Ann"))
	})
	return engine
}

func greet(engine *gin.Engine, acceptLanguage string, langCookie string) string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	if langCookie != "" {
		req.AddCookie(&http.Cookie{Name: "lang", Value: langCookie})
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestLocalizerMiddleware(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name           string
		acceptLanguage string
		langCookie     string
		want           string
	}{
		{"no preference", "", "", "Hello, Ann"},
		{"russian browser", "ru-RU,ru;q=0.9,en;q=0.8", "", "Привет, Ann"},
		{"cookie wins", "ru-RU", "en", "Hello, Ann"},
		{"unsupported language", "de-DE", "", "Hello, Ann"},
		{"garbage header", ";;;", "", "Hello, Ann"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, greet(engine, tt.acceptLanguage, tt.langCookie))
		})
	}
}

func TestLocalizersAreSharedPerLanguage(t *testing.T) {
	engine := newEngine(t)

	for i := 0; i < 20; i++ {
		greet(engine, fmt.Sprintf("ru-RU;q=0.%d", i%9+1), "")
		greet(engine, fmt.Sprintf("x-test-%d", i), "")
	}
	assert.LessOrEqual(t, localizers.ItemCount(), 2)
}

func TestLocalizeFallsBackToKey(t *testing.T) {
	newEngine(t)
	assert.Equal(t, "missing.key", Localize(nil, "missing.key"))
}
