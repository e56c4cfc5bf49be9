package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// invalid_text_representation, raised when a malformed id literal reaches a
// uuid column.
const codeInvalidTextRepresentation = "22P02"

// asNoRows converts the error Postgres raises for a syntactically invalid
// uuid into sql.ErrNoRows. An id that cannot parse can never reference a
// row, so callers see the same not-found they get for an unknown id.
func asNoRows(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextRepresentation {
		return sql.ErrNoRows
	}
	return err
}
