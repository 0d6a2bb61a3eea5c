package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"

	"github.com/balt-dev/titanium/common"
)

// delete lookups after this many days have passed
const keepLookupDays = 90

// RecordLookup stores a successful element lookup.
func (db *DB) RecordLookup(ctx context.Context, element string, userID discord.UserID, channelID discord.ChannelID) error {
	db.Stats.IncQuery()

	sql, args, err := sq.Insert("lookups").
		Columns("element", "user_id", "channel_id").
		Values(element, userID, channelID).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(ctx, sql, args...)
	return errors.Wrap(err, "executing query")
}

// LookupCount is an element's lookup count.
type LookupCount struct {
	Element string `db:"element" json:"element"`
	Count   int64  `db:"count" json:"count"`
}

// LookupCounts returns the most looked up elements, up to limit.
func (db *DB) LookupCounts(ctx context.Context, limit uint64) (counts []LookupCount, err error) {
	db.Stats.IncQuery()

	sql, args, err := sq.Select("element", "count(*) as count").
		From("lookups").
		GroupBy("element").
		OrderBy("count desc", "element").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Select(ctx, db, &counts, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying lookups")
	}
	return counts, nil
}

// CleanLookups deletes old lookups in a loop. It never returns.
func (db *DB) CleanLookups() {
	for {
		ct, err := db.Exec(context.Background(),
			"delete from lookups where time < $1",
			time.Now().UTC().AddDate(0, 0, -keepLookupDays))
		if err != nil {
			common.Log.Errorf("Error deleting old lookups: %v", err)
			time.Sleep(1 * time.Minute)
			continue
		}

		if n := ct.RowsAffected(); n == 0 {
			common.Log.Debugf("Deleted 0 lookups older than %v days.", keepLookupDays)
		} else {
			common.Log.Infof("Deleted %v lookups older than %v days.", n, keepLookupDays)
		}

		time.Sleep(1 * time.Hour)
	}
}
