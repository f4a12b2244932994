package repository

import (
	"context"
	"time"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// LedgerFilter selecciona líneas del mayor. Until es inclusivo; las líneas anteriores al rango
// del reporte se necesitan para el saldo inicial, por eso no hay fecha desde.
type LedgerFilter struct {
	AccountIDs   []string // vacío = todas las cuentas de la empresa
	CostCenterID *string
	Until        time.Time
}

// LedgerRepository lectura de las líneas contabilizadas (asientos en estado POSTED).
type LedgerRepository interface {
	ListLines(ctx context.Context, companyID string, f LedgerFilter) ([]entity.LedgerLine, error)
}
