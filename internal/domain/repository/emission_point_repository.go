package repository

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// EmissionPointRepository persistencia de puntos de emisión y su secuencial.
type EmissionPointRepository interface {
	Create(ctx context.Context, p *entity.EmissionPoint) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.EmissionPoint, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	// Devuelve nil, nil si no existe un punto activo para esa serie y tipo de comprobante.
	GetForUpdate(ctx context.Context, companyID, establishment, code, documentType string) (*entity.EmissionPoint, error)
	UpdateNextSequential(ctx context.Context, id string, next int64) error
}
