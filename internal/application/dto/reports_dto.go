package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// PeriodRequest rango de fechas de un reporte.
type PeriodRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
}

// AccountActivityRequest parámetros para GET /api/reports/accounts/:id/activity.
type AccountActivityRequest struct {
	StartDate    string `query:"start_date"`
	EndDate      string `query:"end_date"`
	CostCenterID string `query:"cost_center_id"` // opcional
}

// Period devuelve solo el rango de fechas.
func (r AccountActivityRequest) Period() PeriodRequest {
	return PeriodRequest{StartDate: r.StartDate, EndDate: r.EndDate}
}

// ── Mayor de cuenta ───────────────────────────────────────────────────────────

// BalanceRowDTO fila del mayor con saldo corrido. Montos redondeados a 2 decimales.
type BalanceRowDTO struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"` // YYYY-MM-DD
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	CostCenterLabel *string         `json:"cost_center_label,omitempty"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
}

// AccountActivityDTO mayor de una cuenta en un período.
type AccountActivityDTO struct {
	AccountID      string          `json:"account_id"`
	AccountCode    string          `json:"account_code"`
	AccountName    string          `json:"account_name"`
	CostCenterID   *string         `json:"cost_center_id,omitempty"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Rows           []BalanceRowDTO `json:"rows"`
}

// ── Estados financieros ───────────────────────────────────────────────────────

// AccountSummaryDTO saldo de una cuenta dentro de un estado financiero.
// La fila de utilidad/pérdida no tiene AccountID ni Code.
type AccountSummaryDTO struct {
	AccountID   string          `json:"account_id,omitempty"`
	Code        string          `json:"code,omitempty"`
	Name        string          `json:"name"`
	AccountType string          `json:"account_type,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheetDTO estado de situación financiera.
type BalanceSheetDTO struct {
	StartDate        string              `json:"start_date"`
	EndDate          string              `json:"end_date"`
	Rows             []AccountSummaryDTO `json:"rows"`
	TotalAssets      decimal.Decimal     `json:"total_assets"`
	TotalLiabilities decimal.Decimal     `json:"total_liabilities"`
	TotalEquity      decimal.Decimal     `json:"total_equity"`
}

// IncomeStatementDTO estado de resultados. La última fila es la utilidad o pérdida del período.
type IncomeStatementDTO struct {
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	Rows         []AccountSummaryDTO `json:"rows"`
	TotalIncome  decimal.Decimal     `json:"total_income"`
	TotalExpense decimal.Decimal     `json:"total_expense"`
	NetResult    decimal.Decimal     `json:"net_result"`
	ResultLabel  string              `json:"result_label"`
}
