package postgresql

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	checkViolation       = "23514"
	invalidTextRepresent = "22P02"
)

// pgErrors maps PostgreSQL failures onto domain errors. A nil entry leaves
// the original error in place.
type pgErrors struct {
	noRows     error
	unique     error
	foreignKey error
	check      error
}

func (m pgErrors) translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && m.noRows != nil {
		return m.noRows
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	var mapped error
	switch pgErr.Code {
	case uniqueViolation:
		mapped = m.unique
	case foreignKeyViolation:
		mapped = m.foreignKey
	case checkViolation:
		mapped = m.check
	case invalidTextRepresent:
		// A malformed UUID cannot name an existing row.
		mapped = m.noRows
	}
	if mapped == nil {
		return err
	}
	return mapped
}

// dateArg binds a calendar date without a timezone conversion.
func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateArg(*t)
	return &s
}
