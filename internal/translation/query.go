package translation

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mkoziy/i18nmodel/internal/schema"
)

// Query is a lazy, restartable view over translation rows. Nothing is read
// until a terminal method runs, and every terminal method issues a new query.
type Query struct {
	db bun.IDB
	t  *schema.Translation

	sourceID any
	scoped   bool
	language string
	filtered bool
}

// Lang narrows the query to one language.
func (q *Query) Lang(code string) *Query {
	cp := *q
	cp.language = code
	cp.filtered = true
	return &cp
}

// Source narrows the query to one source row.
func (q *Query) Source(sourceID any) *Query {
	cp := *q
	cp.sourceID = sourceID
	cp.scoped = true
	return &cp
}

func (q *Query) filter(sq *bun.SelectQuery) *bun.SelectQuery {
	sq = sq.Table(q.t.Table)
	if q.scoped {
		sq = sq.Where("? = ?", bun.Ident(schema.SourceColumn), q.sourceID)
	}
	if q.filtered {
		sq = sq.Where("? = ?", bun.Ident(schema.LanguageColumn), q.language)
	}
	return sq
}

func (q *Query) selectRows(limit int) *bun.SelectQuery {
	sq := q.filter(q.db.NewSelect()).
		Column(q.t.Columns()...).
		OrderExpr("? ASC", bun.Ident(schema.IDColumn))
	if limit > 0 {
		sq = sq.Limit(limit)
	}
	return sq
}

func (q *Query) scan(ctx context.Context, limit int) ([]*Row, error) {
	var maps []map[string]interface{}
	if err := q.selectRows(limit).Scan(ctx, &maps); err != nil {
		return nil, err
	}
	rows := make([]*Row, 0, len(maps))
	for _, m := range maps {
		rows = append(rows, decodeRow(q.t, m))
	}
	return rows, nil
}

// All returns every matching row ordered by id.
func (q *Query) All(ctx context.Context) ([]*Row, error) {
	rows, err := q.scan(ctx, 0)
	if err != nil {
		return nil, wrapDBError("select "+q.t.Table, err)
	}
	return rows, nil
}

// First returns the lowest-id matching row.
func (q *Query) First(ctx context.Context) (*Row, error) {
	rows, err := q.scan(ctx, 1)
	if err != nil {
		return nil, wrapDBError("select "+q.t.Table, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Get returns exactly one row, failing with ErrNotFound or ErrMultipleResults.
func (q *Query) Get(ctx context.Context) (*Row, error) {
	rows, err := q.scan(ctx, 2)
	if err != nil {
		return nil, wrapDBError("select "+q.t.Table, err)
	}
	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return rows[0], nil
	default:
		return nil, ErrMultipleResults
	}
}

// Count returns the number of matching rows.
func (q *Query) Count(ctx context.Context) (int, error) {
	var n int
	err := q.filter(q.db.NewSelect()).ColumnExpr("count(*)").Scan(ctx, &n)
	if err != nil {
		return 0, wrapDBError("count "+q.t.Table, err)
	}
	return n, nil
}

// Exists reports whether any row matches.
func (q *Query) Exists(ctx context.Context) (bool, error) {
	n, err := q.Count(ctx)
	return n > 0, err
}

// Each calls fn for every matching row, stopping at the first error.
func (q *Query) Each(ctx context.Context, fn func(*Row) error) error {
	rows, err := q.All(ctx)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

// Languages returns the distinct language codes among matching rows.
func (q *Query) Languages(ctx context.Context) ([]string, error) {
	var codes []string
	err := q.filter(q.db.NewSelect()).
		Distinct().
		Column(schema.LanguageColumn).
		OrderExpr("? ASC", bun.Ident(schema.LanguageColumn)).
		Scan(ctx, &codes)
	if err != nil {
		return nil, wrapDBError("select "+q.t.Table, err)
	}
	return codes, nil
}
