package repository

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// GetByID devuelve nil, nil si la empresa no existe.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
