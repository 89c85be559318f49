// Package admin plans the inline translation forms shown on a source
// model's edit page. Rendering is left to the host application.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkoziy/i18nmodel/internal/locale"
	"github.com/mkoziy/i18nmodel/internal/schema"
	"github.com/mkoziy/i18nmodel/internal/translation"
)

// Permission actions.
const (
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

// PermissionChecker is implemented by the host's user type.
type PermissionChecker interface {
	HasPerm(perm string) bool
}

// Inline lists the missing translations of a source row as extra forms.
type Inline struct {
	manager *translation.Manager
	langs   locale.Set
}

// NewInline creates an inline for the schema served by m.
func NewInline(m *translation.Manager) *Inline {
	return &Inline{manager: m, langs: m.Languages()}
}

// MaxNum is the largest number of translation forms: one per non-default language.
func (in *Inline) MaxNum() int {
	return len(in.langs.Languages) - 1
}

// ExistingLanguages returns the languages already translated for sourceID.
// A nil sourceID stands for an unsaved source row.
func (in *Inline) ExistingLanguages(ctx context.Context, sourceID any) ([]string, error) {
	if sourceID == nil {
		return nil, nil
	}
	return in.manager.For(sourceID).AvailableLanguages(ctx)
}

// UntranslatedLanguages returns the non-default languages with no
// translation yet, in Language Set order.
func (in *Inline) UntranslatedLanguages(ctx context.Context, sourceID any) ([]string, error) {
	existing, err := in.ExistingLanguages(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(existing))
	for _, code := range existing {
		done[code] = struct{}{}
	}

	var out []string
	for _, code := range in.langs.TranslatableCodes() {
		if _, ok := done[code]; !ok {
			out = append(out, code)
		}
	}
	return out, nil
}

// Extra is the number of blank forms to show.
func (in *Inline) Extra(ctx context.Context, sourceID any) (int, error) {
	existing, err := in.ExistingLanguages(ctx, sourceID)
	if err != nil {
		return 0, err
	}
	extra := in.MaxNum() - len(existing)
	if extra < 0 {
		extra = 0
	}
	return extra, nil
}

// InitialForms pre-fills the language of each blank form.
func (in *Inline) InitialForms(ctx context.Context, sourceID any) ([]map[string]any, error) {
	untranslated, err := in.UntranslatedLanguages(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	forms := make([]map[string]any, 0, len(untranslated))
	for _, code := range untranslated {
		forms = append(forms, map[string]any{schema.LanguageColumn: code})
	}
	return forms, nil
}

// Permission returns the source permission guarding action, such as
// "blog.change_article". Translations have no permissions of their own.
func (in *Inline) Permission(action string) string {
	src := in.manager.Schema().Source
	return fmt.Sprintf("%s.%s_%s", src.Namespace, action, strings.ToLower(src.TypeName))
}

// HasAddPermission reports whether user may add translations.
func (in *Inline) HasAddPermission(user PermissionChecker) bool {
	return user != nil && user.HasPerm(in.Permission(ActionAdd))
}

// HasChangePermission reports whether user may change translations.
func (in *Inline) HasChangePermission(user PermissionChecker) bool {
	return user != nil && user.HasPerm(in.Permission(ActionChange))
}

// HasDeletePermission reports whether user may delete translations.
func (in *Inline) HasDeletePermission(user PermissionChecker) bool {
	return user != nil && user.HasPerm(in.Permission(ActionDelete))
}
