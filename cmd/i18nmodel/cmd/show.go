package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoziy/i18nmodel/internal/admin"
	"github.com/mkoziy/i18nmodel/internal/present"
	"github.com/mkoziy/i18nmodel/internal/repositories"
)

var showCmd = &cobra.Command{
	Use:   "show <slug> [lang]",
	Short: "Show an article in a language, falling back to the original",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	article, err := repositories.GetArticleBySlug(ctx, a.db, args[0])
	if err != nil {
		return fmt.Errorf("article %q: %w", args[0], err)
	}
	lang := a.langs.Default
	if len(args) > 1 {
		lang = args[1]
	}

	h := present.New(nil, a.langs, a.logger, a.managers()...)
	m, err := a.manager("ArticleI18N")
	if err != nil {
		return err
	}
	missing, err := admin.NewInline(m).UntranslatedLanguages(ctx, article.ID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"language":     lang,
		"article":      h.Localize(ctx, article, lang),
		"untranslated": missing,
	})
}
