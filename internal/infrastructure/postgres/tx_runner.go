package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/contable-api/internal/application/documents"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

// Ensure TxRunner implements documents.TxRunner.
var _ documents.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIssue inicia una transacción, ejecuta fn con los repos de numeración atados a la tx y hace
// Commit o Rollback. El FOR UPDATE de GetForUpdate serializa emisiones concurrentes de una serie.
func (r *TxRunner) RunIssue(ctx context.Context, fn func(
	points repository.EmissionPointRepository,
	docs repository.DocumentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEmissionPointRepository(tx), NewDocumentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
