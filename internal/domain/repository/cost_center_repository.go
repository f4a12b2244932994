package repository

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// CostCenterRepository lectura de centros de costo.
type CostCenterRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*entity.CostCenter, error)
	ListByCompany(ctx context.Context, companyID string) ([]entity.CostCenter, error)
}
