package repository

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// AccountRepository lectura del plan de cuentas de una empresa.
type AccountRepository interface {
	// GetByID devuelve nil, nil si la cuenta no existe o pertenece a otra empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Account, error)
	// ListByTypes devuelve las cuentas activas de los tipos indicados, ordenadas por código.
	ListByTypes(ctx context.Context, companyID string, types ...entity.AccountType) ([]entity.Account, error)
}
