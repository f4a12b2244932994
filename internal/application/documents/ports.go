package documents

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn retorna error se hace rollback y el secuencial no se consume.
type TxRunner interface {
	RunIssue(ctx context.Context, fn func(
		points repository.EmissionPointRepository,
		docs repository.DocumentRepository,
	) error) error
}

// InfoTributariaBuilder construye el bloque <infoTributaria> común a todos los comprobantes.
// La firma XAdES y el envío al SRI los hace un servicio externo.
type InfoTributariaBuilder interface {
	BuildInfoTributaria(company *entity.Company, doc *entity.ElectronicDocument) ([]byte, error)
}
