package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"

	pgStringDataRightTruncation = "22001"
	pgNumericValueOutOfRange    = "22003"
)

func IsForeignKeyViolationError(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

func IsCheckViolationError(err error) bool {
	return hasPgCode(err, pgCheckViolation)
}

// IsValueOutOfRangeError reports a value too large for its column: a numeric
// overflow or a string longer than its varchar limit.
func IsValueOutOfRangeError(err error) bool {
	return hasPgCode(err, pgNumericValueOutOfRange) || hasPgCode(err, pgStringDataRightTruncation)
}

func IsNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
