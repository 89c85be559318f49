package models

import (
	"github.com/mkoziy/i18nmodel/internal/schema"
)

// Namespace is the registry namespace of the blog models.
const Namespace = "blog"

// Translations holds the translation schemas of the blog models.
type Translations struct {
	Article  *schema.Translation
	Category *schema.Translation
}

// Definitions returns the translation definitions of the blog models.
// ArticleI18N finds its source by name; CategoryI18N names it explicitly
// and restricts the copied fields.
func Definitions() []schema.Definition {
	return []schema.Definition{
		{Name: "ArticleI18N", Namespace: Namespace},
		{
			Name:      "CategoryI18N",
			Namespace: Namespace,
			Source:    "blog.Category",
			Fields:    []string{"name", "description"},
		},
	}
}

// Register records the blog models and defines their translation schemas.
func Register(reg *schema.Registry) (Translations, error) {
	if err := reg.Register(Namespace, (*Category)(nil), (*Article)(nil)); err != nil {
		return Translations{}, err
	}

	var out Translations
	for _, def := range Definitions() {
		t, err := reg.Define(def)
		if err != nil {
			return Translations{}, err
		}
		switch t.Name {
		case "ArticleI18N":
			out.Article = t
		case "CategoryI18N":
			out.Category = t
		}
	}
	return out, nil
}
