package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkoziy/i18nmodel/internal/models"
	"github.com/mkoziy/i18nmodel/internal/repositories"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo articles",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	category := &models.Category{Name: "News"}
	articles := []*models.Article{
		{Slug: "hello-world", Title: "Hello world", Body: "First post.", Status: models.StatusPublished},
		{Slug: "release-notes", Title: "Release notes", Body: "What changed.", Status: models.StatusDraft},
	}
	for _, art := range articles {
		if err := art.Validate(); err != nil {
			return err
		}
	}

	if _, err := repositories.GetArticleBySlug(ctx, a.db, articles[0].Slug); err == nil {
		a.logger.Info("demo data present, refreshing articles")
		return repositories.UpsertArticles(ctx, a.db, articles)
	}

	if err := repositories.InsertCategoryWithArticles(ctx, a.db, category, articles); err != nil {
		return err
	}
	a.logger.Info("seeded demo data", "category", category.ID, "articles", len(articles))
	return nil
}
