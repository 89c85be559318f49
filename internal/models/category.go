package models

import (
	"errors"

	"github.com/uptrace/bun"
)

// Category groups articles.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID          int64   `bun:"id,pk,autoincrement" json:"id"`
	Name        string  `bun:"name,unique,notnull" json:"name"`
	Description *string `bun:"description,type:text" json:"description,omitempty"`
	Position    int     `bun:"position,notnull,default:0" json:"position"`

	Articles []*Article `bun:"rel:has-many,join:id=category_id" json:"articles,omitempty"`
}

// Validate checks that required category fields are present.
func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Position < 0 {
		return errors.New("position must not be negative")
	}
	return nil
}
