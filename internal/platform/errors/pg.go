package errors

// Postgres helpers: SQLSTATE predicates and mapping pgx errors onto ErrorCode

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
	sqlStateStringTooLong       = "22001"
	sqlStateBadTextRepr         = "22P02"
	sqlStateSerialization       = "40001"
	sqlStateDeadlock            = "40P01"
	sqlStateLockNotAvailable    = "55P03"
	sqlStateReadOnlyTx          = "25006"
	sqlStateCannotConnectNow    = "57P03"
)

// PgError returns the *pgconn.PgError at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given state
func IsSQLState(err error, state string) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == state
}

// IsDuplicateKey reports a unique violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, sqlStateUniqueViolation) }

// IsForeignKeyViolation reports a foreign key violation
func IsForeignKeyViolation(err error) bool { return IsSQLState(err, sqlStateForeignKeyViolation) }

// IsCheckViolation reports a check constraint violation
func IsCheckViolation(err error) bool { return IsSQLState(err, sqlStateCheckViolation) }

// DBErrorCode classifies a Postgres error; ok is false for non Postgres errors
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case sqlStateUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case sqlStateForeignKeyViolation:
		// a vote against a dispute id that does not exist
		return ErrorCodeNotFound, true
	case sqlStateNotNullViolation, sqlStateCheckViolation, sqlStateStringTooLong, sqlStateBadTextRepr:
		return ErrorCodeValidation, true
	case sqlStateReadOnlyTx, sqlStateCannotConnectNow:
		return ErrorCodeUnavailable, true
	default:
		return ErrorCodeDB, true
	}
}

// FromPostgres wraps err with a mapped code, nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsRetryable reports contention failures worth another attempt
// local cancellation is never retryable
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := PgError(err); ok {
		switch pgErr.Code {
		case sqlStateSerialization, sqlStateDeadlock, sqlStateLockNotAvailable:
			return true
		}
		return false
	}
	msg := strings.ToLower(Root(err).Error())
	return strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "commit unexpectedly resulted in rollback")
}
