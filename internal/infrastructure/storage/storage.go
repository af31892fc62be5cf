// Package storage persists catalog and content entities into Postgres via
// parameterized statements; dynamic query shapes are built with squirrel.
package storage

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// psql builds statements with Postgres dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
