package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo lectura de centros de costo.
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository construye el adaptador.
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// GetByID obtiene un centro de costo de la empresa.
func (r *CostCenterRepo) GetByID(ctx context.Context, companyID, id string) (*entity.CostCenter, error) {
	ids, ok := parseIDs(companyID, id)
	if !ok {
		return nil, nil
	}
	var c entity.CostCenter
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, code, name FROM cost_centers WHERE company_id = $1 AND id = $2`,
		ids[0], ids[1],
	).Scan(&c.ID, &c.CompanyID, &c.Code, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	return &c, nil
}

// ListByCompany centros de costo de la empresa ordenados por código.
func (r *CostCenterRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.CostCenter, error) {
	ids, ok := parseIDs(companyID)
	if !ok {
		return []entity.CostCenter{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, code, name FROM cost_centers WHERE company_id = $1 ORDER BY code`, ids[0])
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()

	list := []entity.CostCenter{}
	for rows.Next() {
		var c entity.CostCenter
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
