package reports

import (
	"context"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// Tipos de reporte exportables a PDF.
const (
	KindBalanceSheet    = "balance-sheet"
	KindIncomeStatement = "income-statement"
)

// ReportPDFGenerator genera la representación impresa de los estados financieros.
// La implementación vive en infrastructure/pdf (Maroto).
type ReportPDFGenerator interface {
	BalanceSheetPDF(ctx context.Context, company *entity.Company, report *dto.BalanceSheetDTO) ([]byte, error)
	IncomeStatementPDF(ctx context.Context, company *entity.Company, report *dto.IncomeStatementDTO) ([]byte, error)
}
