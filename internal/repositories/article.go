package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mkoziy/i18nmodel/internal/models"
)

// GetArticleBySlug fetches an article by slug with its category.
func GetArticleBySlug(ctx context.Context, db bun.IDB, slug string) (*models.Article, error) {
	article := new(models.Article)
	err := db.NewSelect().
		Model(article).
		Where("a.slug = ?", slug).
		Relation("Category").
		Scan(ctx)

	return article, err
}

// ListPublishedArticles returns published articles, most viewed first.
func ListPublishedArticles(ctx context.Context, db bun.IDB, limit int) ([]*models.Article, error) {
	var articles []*models.Article
	err := db.NewSelect().
		Model(&articles).
		Relation("Category").
		Where("a.status = ?", models.StatusPublished).
		OrderExpr("a.views DESC, a.id ASC").
		Limit(limit).
		Scan(ctx)

	return articles, err
}

// InsertCategoryWithArticles inserts a category and its articles in a transaction.
func InsertCategoryWithArticles(ctx context.Context, db bun.IDB, category *models.Category, articles []*models.Article) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(category).Exec(ctx); err != nil {
			return err
		}

		for _, a := range articles {
			a.CategoryID = &category.ID
		}

		if len(articles) > 0 {
			if _, err := tx.NewInsert().Model(&articles).Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
}

// UpsertArticles performs a batch upsert on articles keyed by slug.
func UpsertArticles(ctx context.Context, db bun.IDB, articles []*models.Article) error {
	_, err := db.NewInsert().
		Model(&articles).
		On("CONFLICT (slug) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("body = EXCLUDED.body").
		Set("status = EXCLUDED.status").
		Set("category_id = EXCLUDED.category_id").
		Set("updated_at = CURRENT_TIMESTAMP").
		Exec(ctx)

	return err
}
