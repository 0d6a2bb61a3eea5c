package db

import (
	"context"

	"emperror.dev/errors"
	"github.com/georgysavva/scany/pgxscan"

	"github.com/balt-dev/titanium/elements"
)

// Element is an element row, mirroring the registry for the web API.
type Element struct {
	Name         string `db:"name" json:"name"`
	Symbol       string `db:"symbol" json:"symbol"`
	AtomicNumber int    `db:"atomic_number" json:"atomic_number"`
	Pronouns     string `db:"pronouns" json:"pronouns"`
	EmbedColor   int    `db:"embed_color" json:"embed_color"`
	Author       string `db:"author" json:"author"`
}

// SyncElements mirrors the registry into the elements table,
// removing rows for elements that no longer exist.
func (db *DB) SyncElements(ctx context.Context, r *elements.Registry) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, "delete from elements")
	if err != nil {
		return errors.Wrap(err, "clearing elements")
	}

	for _, e := range r.Elements() {
		sql, args, err := sq.Insert("elements").
			Columns("name", "symbol", "atomic_number", "pronouns", "embed_color", "author").
			Values(e.Name, e.Symbol, e.AtomicNumber, e.Pronouns, e.EmbedColor, e.Author).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "building sql")
		}

		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return errors.Wrapf(err, "inserting element %q", e.Name)
		}
	}

	err = tx.Commit(ctx)
	return errors.Wrap(err, "committing transaction")
}

// Elements returns all element rows, in name order.
func (db *DB) Elements(ctx context.Context) (es []Element, err error) {
	db.Stats.IncQuery()

	err = pgxscan.Select(ctx, db, &es, "select * from elements order by name")
	if err != nil {
		return nil, errors.Wrap(err, "querying elements")
	}
	return es, nil
}
