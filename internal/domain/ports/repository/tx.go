package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

// NoTX marks the non-transactional path explicitly at call sites.
var NoTX Tx

// TransactionManager executes a function within a database transaction,
// passing the underlying transaction handle via `tx`.
//
// Keeping the handle opaque means use-case interfaces stay clean: no
// transaction types leak out of the infra layer, and repositories accept a
// nil tx for the non-transactional path. The concrete type is infra-defined
// (pgx.Tx for Postgres).
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
