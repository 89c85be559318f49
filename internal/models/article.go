package models

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ArticleStatus tracks the publishing state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// Article is a translatable blog post. Slug, Title and Body are copied into
// the article translation table; Status is excluded with the i18n tag.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID         int64         `bun:"id,pk,autoincrement" json:"id"`
	Slug       string        `bun:"slug,unique,notnull" i18n:"slug" json:"slug"`
	Title      string        `bun:"title,notnull" json:"title"`
	Body       string        `bun:"body,type:text" json:"body"`
	Status     ArticleStatus `bun:"status,notnull" i18n:"-" json:"status"`
	Views      int64         `bun:"views,notnull,default:0" json:"views"`
	CategoryID *int64        `bun:"category_id" json:"category_id,omitempty"`
	CreatedAt  time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}

// BeforeUpdate updates the timestamp on modifications.
func (a *Article) BeforeUpdate(ctx context.Context, query *bun.UpdateQuery) error {
	a.UpdatedAt = time.Now()
	return nil
}

// Validate checks that required article fields are present.
func (a *Article) Validate() error {
	if a.Slug == "" {
		return errors.New("slug is required")
	}
	if a.Title == "" {
		return errors.New("title is required")
	}
	switch a.Status {
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		return errors.New("unknown status")
	}
	return nil
}

// IsPublished reports whether the article is visible to readers.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}
