package repository

import (
    "context"
    "database/sql"
)

type txKey struct{}

// TxRunner wraps a *sql.DB and runs functions inside a transaction that is
// carried in the context. Repositories pick the transaction up through
// dbtx, so a service can span several repositories with one transaction
// without threading *sql.Tx through every call.
type TxRunner struct {
    db *sql.DB
}

// NewTxRunner returns a TxRunner bound to the given database.
func NewTxRunner(db *sql.DB) *TxRunner { return &TxRunner{db: db} }

// WithTx runs fn inside a transaction. A nested call reuses the ambient
// transaction. The transaction commits when fn returns nil and rolls back
// on any error, so a failing step leaves no partial writes behind.
func (r *TxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
    if txFromContext(ctx) != nil {
        return fn(ctx)
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    txCtx := context.WithValue(ctx, txKey{}, tx)
    if err := fn(txCtx); err != nil {
        _ = tx.Rollback()
        return err
    }
    return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
    tx, _ := ctx.Value(txKey{}).(*sql.Tx)
    return tx
}

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dbtx returns the ambient transaction when one is present, the plain
// database handle otherwise.
func dbtx(ctx context.Context, db *sql.DB) querier {
    if tx := txFromContext(ctx); tx != nil {
        return tx
    }
    return db
}
