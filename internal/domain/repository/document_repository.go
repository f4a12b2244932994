package repository

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// DocumentRepository persistencia de comprobantes con clave de acceso asignada.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.ElectronicDocument) error
	// GetByAccessKey devuelve nil, nil si no existe.
	GetByAccessKey(ctx context.Context, companyID, accessKey string) (*entity.ElectronicDocument, error)
}
