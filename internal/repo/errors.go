package repo

import (
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// SQLSTATE codes the repository distinguishes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeAdminShutdown       = "57P01"
	codeCannotConnectNow    = "57P03"
	classConnection         = "08"
)

// storeError wraps a driver error into a *domain.StoreError for entity.
func storeError(entity domain.Entity, op string, err error) error {
	return &domain.StoreError{Entity: entity, Op: op, Kind: classify(err), Err: err}
}

// classify maps a driver error to one of the storage error kinds.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation, pgErr.Code == codeForeignKeyViolation:
			return domain.ErrConflict
		case strings.HasPrefix(pgErr.Code, classConnection),
			pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCannotConnectNow:
			return domain.ErrUnavailable
		}
		return domain.ErrUnknown
	}

	var (
		connectErr *pgconn.ConnectError
		netErr     net.Error
	)
	if errors.As(err, &connectErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return domain.ErrUnavailable
	}
	return domain.ErrUnknown
}
