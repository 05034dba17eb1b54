// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// I18nMiddleware negotiates the response language from Accept-Language.
// supported holds locale names such as "pt_BR"; the first one is the fallback.
func I18nMiddleware(supported []string) gin.HandlerFunc {
	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, name := range supported {
		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, name)
	}
	matcher := language.NewMatcher(tags)

	return func(c *gin.Context) {
		lang := ""
		if len(names) > 0 {
			lang = names[0]
			if header := c.GetHeader("Accept-Language"); header != "" {
				_, index, confidence := matcher.Match(parseAcceptLanguage(header)...)
				if confidence != language.No {
					lang = names[index]
				}
			}
		}

		// Set language in context
		c.Set("lang", lang)
		c.Next()
	}
}

func parseAcceptLanguage(header string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	return tags
}
