// Package locale translates page strings and form errors. The language of a
// request comes from the "lang" cookie, else from Accept-Language.
package locale

import (
	"io/fs"
	"strings"

	"github.com/kinocourses/kinocourses/caching"
	"github.com/kinocourses/kinocourses/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const localizerKey = "localizer"

// Written once by InitLocalizer and only read afterwards.
var (
	i18nBundle *i18n.Bundle
	supported  []language.Tag
	matcher    language.Matcher
	// one localizer per supported language
	localizers *caching.Cache
)

// InitLocalizer loads every translation file under "translation" in i18nFS.
func InitLocalizer(i18nFS fs.FS) error {
	bundle := i18n.NewBundle(language.MustParse("en-US"))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := parseTranslationFiles(i18nFS, bundle); err != nil {
		return err
	}
	i18nBundle = bundle
	supported = bundle.LanguageTags()
	matcher = language.NewMatcher(supported)
	localizers = caching.NewCache()
	return nil
}

func parseTranslationFiles(i18nFS fs.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(i18nFS, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
}

// createTemplateData turns "key==value" params into template data.
func createTemplateData(params []string, seperator ...string) map[string]any {
	sep := "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// Localize translates key. It falls back to the key itself when no
// localizer is available or the message is unknown.
func Localize(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// LocalizerMiddleware stores a per-request localizer in the gin context.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if i18nBundle == nil {
			c.Next()
			return
		}
		tag := matchLanguage(c)
		localizer, _ := caching.GetOrLoad(localizers, tag.String(), func() (*i18n.Localizer, error) {
			return i18n.NewLocalizer(i18nBundle, tag.String()), nil
		})
		c.Set(localizerKey, localizer)
		c.Next()
	}
}

// matchLanguage picks one of the bundle's languages for the request. The
// "lang" cookie wins over Accept-Language; the default language is used
// when nothing matches.
func matchLanguage(c *gin.Context) language.Tag {
	var prefs []language.Tag
	if cookie, err := c.Request.Cookie("lang"); err == nil && cookie.Value != "" {
		if tag, err := language.Parse(cookie.Value); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if accept, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language")); err == nil {
		prefs = append(prefs, accept...)
	}
	_, index, _ := matcher.Match(prefs...)
	return supported[index]
}

// GetLocalizer returns the localizer of the request, or nil.
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if obj, ok := c.Get(localizerKey); ok {
		if l, ok := obj.(*i18n.Localizer); ok {
			return l
		}
	}
	return nil
}
