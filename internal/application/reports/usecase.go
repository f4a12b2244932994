package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/ledger"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/logger"
)

// UseCase arma los reportes contables a partir de las líneas del mayor:
//   - Mayor de cuenta con saldo inicial y saldo corrido.
//   - Estado de situación (activo, pasivo, patrimonio).
//   - Estado de resultados con la fila de utilidad o pérdida.
//
// Los cálculos se delegan a domain/ledger; aquí solo se consulta, se filtra por empresa y se
// redondea para la respuesta.
type UseCase struct {
	companies   repository.CompanyRepository
	accounts    repository.AccountRepository
	costCenters repository.CostCenterRepository
	ledgerRepo  repository.LedgerRepository
	pdf         ReportPDFGenerator
	loc         *time.Location
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso. loc es la zona horaria en la que se interpretan las fechas
// de los reportes; nil = UTC. pdf puede ser nil si no se exporta a PDF.
func NewUseCase(
	companies repository.CompanyRepository,
	accounts repository.AccountRepository,
	costCenters repository.CostCenterRepository,
	ledgerRepo repository.LedgerRepository,
	pdf ReportPDFGenerator,
	loc *time.Location,
	log *logger.Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		companies:   companies,
		accounts:    accounts,
		costCenters: costCenters,
		ledgerRepo:  ledgerRepo,
		pdf:         pdf,
		loc:         loc,
		log:         log.Named("reports"),
		now:         time.Now,
	}
}

// AccountActivity devuelve el mayor de una cuenta: fila de saldo inicial y una fila por
// movimiento del período, opcionalmente filtrado por centro de costo.
func (uc *UseCase) AccountActivity(
	ctx context.Context,
	companyID, accountID string,
	req dto.AccountActivityRequest,
) (*dto.AccountActivityDTO, error) {
	start, end, err := ParsePeriod(req.StartDate, req.EndDate, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}

	acc, err := uc.accounts.GetByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("reports: cuenta: %w", err)
	}
	if acc == nil {
		return nil, fmt.Errorf("cuenta %s: %w", accountID, domain.ErrNotFound)
	}

	var costCenterID *string
	if req.CostCenterID != "" {
		cc, err := uc.costCenters.GetByID(ctx, companyID, req.CostCenterID)
		if err != nil {
			return nil, fmt.Errorf("reports: centro de costo: %w", err)
		}
		if cc == nil {
			return nil, fmt.Errorf("centro de costo %s: %w", req.CostCenterID, domain.ErrNotFound)
		}
		costCenterID = &cc.ID
	}

	// Líneas y etiquetas de centros de costo en paralelo (consultas independientes).
	type linesResult struct {
		lines []entity.LedgerLine
		err   error
	}
	type labelsResult struct {
		labels map[string]string
		err    error
	}
	linesChan := make(chan linesResult, 1)
	labelsChan := make(chan labelsResult, 1)

	go func() {
		lines, err := uc.ledgerRepo.ListLines(ctx, companyID, repository.LedgerFilter{
			AccountIDs:   []string{acc.ID},
			CostCenterID: costCenterID,
			Until:        endOfDay(end),
		})
		linesChan <- linesResult{lines, err}
	}()
	go func() {
		centers, err := uc.costCenters.ListByCompany(ctx, companyID)
		if err != nil {
			labelsChan <- labelsResult{nil, err}
			return
		}
		labels := make(map[string]string, len(centers))
		for _, c := range centers {
			labels[c.ID] = c.Label()
		}
		labelsChan <- labelsResult{labels, nil}
	}()

	linesRes := <-linesChan
	labelsRes := <-labelsChan
	if linesRes.err != nil {
		return nil, fmt.Errorf("reports: líneas del mayor: %w", linesRes.err)
	}
	if labelsRes.err != nil {
		return nil, fmt.Errorf("reports: centros de costo: %w", labelsRes.err)
	}

	rows, err := ledger.ComputeBalancesWithLabels(inLocation(linesRes.lines, uc.loc), start, end, labelsRes.labels)
	if err != nil {
		return nil, err
	}

	out := &dto.AccountActivityDTO{
		AccountID:      acc.ID,
		AccountCode:    acc.Code,
		AccountName:    acc.Name,
		CostCenterID:   costCenterID,
		StartDate:      start.Format(dateLayout),
		EndDate:        end.Format(dateLayout),
		OpeningBalance: money(rows[0].RunningBalance),
		ClosingBalance: money(rows[len(rows)-1].RunningBalance),
		Rows:           make([]dto.BalanceRowDTO, 0, len(rows)),
	}
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i, r := range rows {
		if i > 0 {
			totalDebit = totalDebit.Add(r.Debit)
			totalCredit = totalCredit.Add(r.Credit)
		}
		out.Rows = append(out.Rows, dto.BalanceRowDTO{
			ID:              r.ID,
			Date:            r.Date.Format(dateLayout),
			Description:     r.Description,
			Debit:           money(r.Debit),
			Credit:          money(r.Credit),
			CostCenterLabel: r.CostCenterLabel,
			RunningBalance:  money(r.RunningBalance),
		})
	}
	out.TotalDebit = money(totalDebit)
	out.TotalCredit = money(totalCredit)

	uc.log.Debug().
		Str("company_id", companyID).
		Str("account_id", acc.ID).
		Int("rows", len(rows)).
		Msg("mayor de cuenta generado")
	return out, nil
}

// BalanceSheet estado de situación al cierre del período.
func (uc *UseCase) BalanceSheet(ctx context.Context, companyID string, req dto.PeriodRequest) (*dto.BalanceSheetDTO, error) {
	start, end, err := ParsePeriod(req.StartDate, req.EndDate, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	accounts, grouped, err := uc.accountsWithLines(ctx, companyID, end,
		entity.AccountTypeAsset, entity.AccountTypeLiability, entity.AccountTypeEquity)
	if err != nil {
		return nil, err
	}

	sheet, err := ledger.BuildBalanceSheet(accounts, grouped, start, end)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("start_date", start.Format(dateLayout)).
		Str("end_date", end.Format(dateLayout)).
		Int("accounts", len(sheet.Rows)).
		Msg("estado de situación generado")

	return &dto.BalanceSheetDTO{
		StartDate:        start.Format(dateLayout),
		EndDate:          end.Format(dateLayout),
		Rows:             summaries(sheet.Rows),
		TotalAssets:      money(sheet.TotalAssets),
		TotalLiabilities: money(sheet.TotalLiabilities),
		TotalEquity:      money(sheet.TotalEquity),
	}, nil
}

// IncomeStatement estado de resultados del período.
func (uc *UseCase) IncomeStatement(ctx context.Context, companyID string, req dto.PeriodRequest) (*dto.IncomeStatementDTO, error) {
	start, end, err := ParsePeriod(req.StartDate, req.EndDate, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	accounts, grouped, err := uc.accountsWithLines(ctx, companyID, end,
		entity.AccountTypeIncome, entity.AccountTypeExpense)
	if err != nil {
		return nil, err
	}

	st, err := ledger.BuildIncomeStatement(accounts, grouped, start, end)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("result", st.NetResult.StringFixed(2)).
		Msg("estado de resultados generado")

	return &dto.IncomeStatementDTO{
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		Rows:         summaries(st.Rows),
		TotalIncome:  money(st.TotalIncome),
		TotalExpense: money(st.TotalExpense),
		NetResult:    money(st.NetResult),
		ResultLabel:  st.ResultLabel,
	}, nil
}

// ExportPDF genera el PDF del reporte indicado (KindBalanceSheet o KindIncomeStatement).
func (uc *UseCase) ExportPDF(ctx context.Context, companyID, kind string, req dto.PeriodRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reports: generador PDF no configurado")
	}
	if kind != KindBalanceSheet && kind != KindIncomeStatement {
		return nil, domain.NewValidationError("kind", "reporte %q no exportable", kind)
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("reports: empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}

	switch kind {
	case KindBalanceSheet:
		report, err := uc.BalanceSheet(ctx, companyID, req)
		if err != nil {
			return nil, err
		}
		return uc.pdf.BalanceSheetPDF(ctx, company, report)
	default:
		report, err := uc.IncomeStatement(ctx, companyID, req)
		if err != nil {
			return nil, err
		}
		return uc.pdf.IncomeStatementPDF(ctx, company, report)
	}
}

// accountsWithLines carga las cuentas de los tipos pedidos y sus líneas hasta end inclusive.
func (uc *UseCase) accountsWithLines(
	ctx context.Context,
	companyID string,
	end time.Time,
	types ...entity.AccountType,
) ([]entity.Account, map[string][]entity.LedgerLine, error) {
	accounts, err := uc.accounts.ListByTypes(ctx, companyID, types...)
	if err != nil {
		return nil, nil, fmt.Errorf("reports: cuentas: %w", err)
	}
	if len(accounts) == 0 {
		return accounts, map[string][]entity.LedgerLine{}, nil
	}

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	lines, err := uc.ledgerRepo.ListLines(ctx, companyID, repository.LedgerFilter{
		AccountIDs: ids,
		Until:      endOfDay(end),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reports: líneas del mayor: %w", err)
	}
	return accounts, ledger.GroupByAccount(inLocation(lines, uc.loc)), nil
}

func summaries(rows []ledger.AccountSummary) []dto.AccountSummaryDTO {
	out := make([]dto.AccountSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AccountSummaryDTO{
			AccountID:   r.AccountID,
			Code:        r.Code,
			Name:        r.Name,
			AccountType: string(r.AccountType),
			Balance:     money(r.Balance),
		})
	}
	return out
}

// money redondea a centavos solo para presentación.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_999_999, t.Location())
}
