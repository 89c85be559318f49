package locale

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
)

// URLParam is the chi route parameter carrying the language code.
const URLParam = "lang"

// Middleware detects the request language and stores it on the context.
// Priority order:
// 1. Query parameter ?lang=XX
// 2. URL parameter {lang} from the chi route (mount with r.With so params are routed)
// 3. Accept-Language header
// 4. The set default
func Middleware(s Set) func(http.Handler) http.Handler {
	tags, err := s.Tags()
	var matcher language.Matcher
	if err == nil && len(tags) > 0 {
		matcher = language.NewMatcher(tags)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := s.detect(r, matcher)
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), code)))
		})
	}
}

func (s Set) detect(r *http.Request, matcher language.Matcher) string {
	if code := s.lookup(r.URL.Query().Get("lang")); code != "" {
		return code
	}
	if code := s.lookup(chi.URLParam(r, URLParam)); code != "" {
		return code
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" && matcher != nil {
		if code := s.match(matcher, accept); code != "" {
			return code
		}
	}
	return s.Default
}

// lookup matches code case-insensitively against the configured codes.
func (s Set) lookup(code string) string {
	if code == "" {
		return ""
	}
	for _, l := range s.Languages {
		if strings.EqualFold(l.Code, code) {
			return l.Code
		}
	}
	return ""
}

func (s Set) match(matcher language.Matcher, accept string) string {
	desired, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(desired) == 0 {
		return ""
	}
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No || idx < 0 || idx >= len(s.Languages) {
		return ""
	}
	return s.Languages[idx].Code
}
