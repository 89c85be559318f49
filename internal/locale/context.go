package locale

import "context"

type contextKey string

func (c contextKey) String() string {
	return "i18nmodel/locale/" + string(c)
}

const ctxKeyLanguage = contextKey("language")

// WithLanguage stores the active language code on ctx.
func WithLanguage(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, ctxKeyLanguage, code)
}

// FromContext returns the active language code stored on ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(ctxKeyLanguage).(string)
	return code, ok && code != ""
}

// Active returns the language on ctx, or the set default when none is set.
func (s Set) Active(ctx context.Context) string {
	if code, ok := FromContext(ctx); ok {
		return code
	}
	return s.Default
}
