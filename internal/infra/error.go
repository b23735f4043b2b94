package infra

import (
	"context"

	"space-booking/internal/pkg/errs"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// RepositoryError carries a classification kind so usecases can branch on the
// failure class without inspecting driver errors.
type RepositoryError struct {
	Kind string
	Err  error
}

const (
	KindNotFound           = "NOT_FOUND"
	KindDBFailure          = "DB_FAILURE"
	KindDuplicateKey       = "DUPLICATE_KEY"
	KindForeignKeyViolated = "FOREIGN_KEY_VIOLATED"
	KindConflict           = "CONFLICT"
)

// PostgreSQL error codes relevant to classification.
const (
	pgCodeUniqueViolation    = "23505"
	pgCodeForeignKeyViolated = "23503"
	pgCodeExclusionViolated  = "23P01"
)

func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return e.Kind + ": " + e.Err.Error()
	}
	return e.Kind
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// WrapRepoErr classifies err into a RepositoryError. pgx.ErrNoRows maps to
// NOT_FOUND, constraint violations map by SQLSTATE, anything else is
// DB_FAILURE unless an explicit kind is given.
func WrapRepoErr(msg string, err error, kinds ...string) error {
	if err == nil {
		return nil
	}

	kind := KindDBFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	} else {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			kind = KindNotFound
		default:
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case pgCodeUniqueViolation:
					kind = KindDuplicateKey
				case pgCodeForeignKeyViolated:
					kind = KindForeignKeyViolated
				case pgCodeExclusionViolated:
					kind = KindConflict
				}
			}
		}
	}

	return &RepositoryError{Kind: kind, Err: errs.Wrap(err, msg)}
}

// IsKind reports whether err (anywhere in its chain) is a RepositoryError of
// the given kind.
func IsKind(err error, kind string) bool {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.Kind == kind
	}
	return false
}

// DBTX is the query surface shared by pgxpool.Pool and pgx.Tx. Repositories
// take it as a parameter so the same code runs inside and outside a
// transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
