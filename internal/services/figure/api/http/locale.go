package httpapi

import (
	"net/http"
	"strings"

	"github.com/louisbranch/habbohub/internal/platform/errors/i18n"
)

// LangParam is the query parameter used to select a message locale.
const LangParam = "lang"

// resolveLocale picks the message locale for r: the lang query parameter
// first, then Accept-Language, then the base locale.
func resolveLocale(r *http.Request) string {
	if r == nil {
		return i18n.BaseLocale
	}
	if lang := strings.TrimSpace(r.URL.Query().Get(LangParam)); lang != "" {
		return i18n.Match(lang)
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return i18n.Match(accept)
	}
	return i18n.BaseLocale
}
