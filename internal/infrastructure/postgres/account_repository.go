package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo lectura del plan de cuentas.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, company_id, code, name, account_type, parent_id, is_active, created_at, updated_at`

// GetByID obtiene una cuenta de la empresa.
func (r *AccountRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Account, error) {
	ids, ok := parseIDs(companyID, id)
	if !ok {
		return nil, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND id = $2`
	a, err := scanAccount(r.q.QueryRow(ctx, query, ids[0], ids[1]))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// ListByTypes cuentas activas de los tipos indicados, ordenadas por código.
func (r *AccountRepo) ListByTypes(ctx context.Context, companyID string, types ...entity.AccountType) ([]entity.Account, error) {
	ids, ok := parseIDs(companyID)
	if !ok {
		return []entity.Account{}, nil
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND is_active AND account_type = ANY($2::text[])
		ORDER BY code`
	rows, err := r.q.Query(ctx, query, ids[0], names)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	list := []entity.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (entity.Account, error) {
	var a entity.Account
	var typ string
	err := row.Scan(&a.ID, &a.CompanyID, &a.Code, &a.Name, &typ, &a.ParentID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	a.Type = entity.AccountType(typ)
	return a, err
}
