package db

import (
	"context"
	"database/sql"
	"errors"
)

const incrementCounter = `
INSERT INTO counters (name, value)
VALUES ($1, 1)
ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
RETURNING value`

// IncrementCounter bumps the named counter by one and returns the new value.
// A counter that has never been written starts at 1.
func (q *Queries) IncrementCounter(ctx context.Context, name string) (int64, error) {
	row := q.queryRow(ctx, q.incrementCounterStmt, incrementCounter, name)
	var value int64
	err := row.Scan(&value)
	return value, err
}

const getCounter = `
SELECT value FROM counters WHERE name = $1`

// GetCounter reads the named counter. A counter that has never been
// incremented reads as 0 rather than an error.
func (q *Queries) GetCounter(ctx context.Context, name string) (int64, error) {
	row := q.queryRow(ctx, q.getCounterStmt, getCounter, name)
	var value int64
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return value, err
}
