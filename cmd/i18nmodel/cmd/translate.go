package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkoziy/i18nmodel/internal/repositories"
)

var translateCmd = &cobra.Command{
	Use:   "translate <slug> <lang> [field=value ...]",
	Short: "Read or write an article translation",
	Long: `Without field assignments, print the translation of the article in lang.
With assignments, create or update it:

  i18nmodel translate hello-world de title="Hallo Welt" body="Erster Beitrag."`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	updates := make(map[string]any, len(args)-2)
	for _, kv := range args[2:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("expected field=value, got %q", kv)
		}
		updates[k] = v
	}

	article, err := repositories.GetArticleBySlug(ctx, a.db, args[0])
	if err != nil {
		return fmt.Errorf("article %q: %w", args[0], err)
	}

	m, err := a.manager("ArticleI18N")
	if err != nil {
		return err
	}
	row, err := m.TranslateModel(ctx, article, args[1], updates)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(row)
}
