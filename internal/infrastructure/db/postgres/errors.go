package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

const (
	constraintUsername    = "users_username_key"
	constraintRecipeOwner = "recipes_user_id_fkey"
)

// isConstraintViolation reports whether err is a PostgreSQL error with the
// given SQLSTATE raised by the named constraint.
func isConstraintViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code && pgErr.ConstraintName == constraint
}
