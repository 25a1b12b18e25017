// Package storage provides the durable transaction and user repositories.
//
// Two implementations exist: SQLite for real persistence and an in-memory
// store used by tests and the no-persistence backend. Both return consistent
// snapshots at call time; successive calls carry no linearizability
// guarantee across concurrent writes.
package storage

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound marks a lookup or delete against an id that does not exist.
// Distinguishable from validation failures by the transport layer.
var ErrNotFound = errors.New("not found")

// Store is the repository contract consumed by the HTTP layer. The core
// engines never see it; they only receive the sequences it yields.
type Store interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByDateRange(ctx context.Context, start, end core.Date) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	// GetCurrentUser returns the single-tenant user, provisioning the
	// default profile on first read.
	GetCurrentUser(ctx context.Context) (core.UserProfile, error)
	UpdateUser(ctx context.Context, id int64, update core.ProfileUpdate) (core.UserProfile, error)

	Close() error
}
