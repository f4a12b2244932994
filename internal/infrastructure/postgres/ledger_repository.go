package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo lee las líneas de asientos contabilizados. El orden de salida (fecha, creación del
// asiento, número de línea) es el que conserva el cálculo del saldo corrido para un mismo día.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// ListLines devuelve las líneas de la empresa con fecha <= f.Until.
func (r *LedgerRepo) ListLines(ctx context.Context, companyID string, f repository.LedgerFilter) ([]entity.LedgerLine, error) {
	company, ok := parseIDs(companyID)
	if !ok {
		return []entity.LedgerLine{}, nil
	}
	var accountIDs []uuid.UUID
	if len(f.AccountIDs) > 0 {
		if accountIDs, ok = parseIDs(f.AccountIDs...); !ok {
			return []entity.LedgerLine{}, nil
		}
	}
	var costCenter *uuid.UUID
	if f.CostCenterID != nil {
		cc, ok := parseIDs(*f.CostCenterID)
		if !ok {
			return []entity.LedgerLine{}, nil
		}
		costCenter = &cc[0]
	}

	const query = `
		SELECT jl.id, jl.account_id, je.entry_date, jl.debit, jl.credit, jl.cost_center_id,
		       COALESCE(NULLIF(jl.description, ''), je.description, '')
		  FROM journal_lines jl
		  JOIN journal_entries je ON je.id = jl.entry_id
		 WHERE je.company_id = $1
		   AND je.status     = 'POSTED'
		   AND je.entry_date <= $2::date
		   AND ($3::uuid[] IS NULL OR jl.account_id = ANY($3::uuid[]))
		   AND ($4::uuid   IS NULL OR jl.cost_center_id = $4::uuid)
		 ORDER BY je.entry_date, je.created_at, jl.line_no`

	var accountsArg any
	if accountIDs != nil {
		accountsArg = accountIDs
	}
	rows, err := r.q.Query(ctx, query, company[0], f.Until.Format("2006-01-02"), accountsArg, costCenter)
	if err != nil {
		return nil, fmt.Errorf("list ledger lines: %w", err)
	}
	defer rows.Close()

	lines := []entity.LedgerLine{}
	for rows.Next() {
		var l entity.LedgerLine
		if err := rows.Scan(&l.ID, &l.AccountID, &l.Date, &l.Debit, &l.Credit, &l.CostCenterID, &l.Description); err != nil {
			return nil, fmt.Errorf("scan ledger line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
