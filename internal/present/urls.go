package present

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrNoRoute is returned when a path or name matches no route.
var ErrNoRoute = errors.New("no matching route")

// Match is a resolved route.
type Match struct {
	Name    string
	Pattern string
	Args    []string
	Kwargs  map[string]string
}

// URLs is a chi router whose routes carry names, so paths can be resolved
// to a name plus parameters and reversed again.
type URLs struct {
	mux       *chi.Mux
	byName    map[string]string
	byPattern map[string]string
}

// NewURLs creates an empty named router.
func NewURLs() *URLs {
	return &URLs{
		mux:       chi.NewRouter(),
		byName:    make(map[string]string),
		byPattern: make(map[string]string),
	}
}

// Router exposes the underlying chi router for middleware and serving.
func (u *URLs) Router() chi.Router {
	return u.mux
}

// Handle registers h for every method on pattern under name.
// Names may carry a namespace: "blog:article-detail".
func (u *URLs) Handle(name, pattern string, h http.Handler) {
	u.mux.Handle(pattern, h)
	u.byName[name] = pattern
	u.byPattern[patternKey(pattern)] = name
}

// patternKey matches the form chi reports in RoutePattern.
func patternKey(pattern string) string {
	if pattern == "/" {
		return pattern
	}
	return strings.TrimSuffix(pattern, "/")
}

// HandleFunc is Handle for a handler function.
func (u *URLs) HandleFunc(name, pattern string, h http.HandlerFunc) {
	u.Handle(name, pattern, h)
}

// Resolve matches path against the named routes.
func (u *URLs) Resolve(path string) (Match, error) {
	rctx := chi.NewRouteContext()
	if !u.mux.Match(rctx, http.MethodGet, path) {
		return Match{}, fmt.Errorf("%w: %s", ErrNoRoute, path)
	}
	return u.match(rctx)
}

func (u *URLs) match(rctx *chi.Context) (Match, error) {
	pattern := rctx.RoutePattern()
	name, ok := u.byPattern[patternKey(pattern)]
	if !ok {
		return Match{}, fmt.Errorf("%w: unnamed pattern %s", ErrNoRoute, pattern)
	}

	m := Match{Name: name, Pattern: u.byName[name], Kwargs: make(map[string]string)}
	for i, key := range rctx.URLParams.Keys {
		if i >= len(rctx.URLParams.Values) {
			break
		}
		m.Args = append(m.Args, rctx.URLParams.Values[i])
		m.Kwargs[key] = rctx.URLParams.Values[i]
	}
	return m, nil
}

// Reverse builds the path of the route called name. Placeholders take
// their value from kwargs by key, otherwise from args in order.
func (u *URLs) Reverse(name string, args []string, kwargs map[string]string) (string, error) {
	pattern, ok := u.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoRoute, name)
	}
	return reverse(pattern, args, kwargs)
}

func reverse(pattern string, args []string, kwargs map[string]string) (string, error) {
	var b strings.Builder
	next := 0
	rest := pattern
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			break
		}
		end := closingBrace(rest, start)
		if end < 0 {
			return "", fmt.Errorf("unbalanced braces in pattern %q", pattern)
		}
		b.WriteString(rest[:start])

		key, _, _ := strings.Cut(rest[start+1:end], ":")
		if v, ok := kwargs[key]; ok {
			b.WriteString(v)
		} else if next < len(args) {
			b.WriteString(args[next])
			next++
		} else {
			return "", fmt.Errorf("missing value for {%s} in %q", key, pattern)
		}
		rest = rest[end+1:]
	}

	if strings.HasSuffix(rest, "*") {
		rest = strings.TrimSuffix(rest, "*") + kwargs["*"]
	}
	b.WriteString(rest)
	return b.String(), nil
}

// closingBrace finds the brace closing the one at start, allowing nested
// braces inside regexp placeholders such as {id:[0-9]{3}}.
func closingBrace(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
