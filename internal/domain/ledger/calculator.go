// Package ledger calcula saldos iniciales y saldos corridos a partir de las líneas del mayor.
// Es la base de los tres reportes contables: mayor de cuenta, estado de situación y estado de
// resultados. Todas las funciones son puras: no consultan la base de datos ni modifican su entrada.
//
// Regla del saldo corrido:
//
//	saldo[0] = saldo inicial = Σ(debe - haber) de las líneas con fecha < inicio del rango
//	saldo[i] = saldo[i-1] + debe[i] - haber[i]
package ledger

import (
	"sort"
	"time"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Etiquetas de las filas sintéticas.
const (
	OpeningBalanceLabel = "Opening balance"
	ProfitLabel         = "Profit for period"
	LossLabel           = "Loss for period"
)

// Range es un rango de fechas ya normalizado: Start a las 00:00:00.000 y End a las 23:59:59.999.
type Range struct {
	Start time.Time
	End   time.Time
}

// NormalizeRange lleva start al inicio de su día y end al último milisegundo de su día,
// cada uno en su propia zona horaria. Así una fecha sin hora incluye el día completo.
func NormalizeRange(start, end time.Time) (Range, error) {
	if start.IsZero() {
		return Range{}, domain.NewValidationError("start_date", "fecha de inicio requerida")
	}
	if end.IsZero() {
		return Range{}, domain.NewValidationError("end_date", "fecha de fin requerida")
	}
	r := Range{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location()),
	}
	if r.Start.After(r.End) {
		return Range{}, domain.NewValidationError("start_date", "el inicio (%s) es posterior al fin (%s)",
			r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	}
	return r, nil
}

// Before indica si t cae antes del rango.
func (r Range) Before(t time.Time) bool { return t.Before(r.Start) }

// Contains indica si t cae dentro del rango (ambos extremos incluidos).
func (r Range) Contains(t time.Time) bool { return !t.Before(r.Start) && !t.After(r.End) }

// BalanceRow es una fila del mayor con su saldo corrido.
// La primera fila siempre es el saldo inicial, con debe y haber en cero.
type BalanceRow struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	CostCenterLabel *string         `json:"cost_center_label,omitempty"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
}

// ComputeBalances devuelve la fila de saldo inicial seguida de una fila por cada línea dentro
// del rango, en orden cronológico. Las líneas posteriores al rango se descartan.
func ComputeBalances(lines []entity.LedgerLine, rangeStart, rangeEnd time.Time) ([]BalanceRow, error) {
	return ComputeBalancesWithLabels(lines, rangeStart, rangeEnd, nil)
}

// ComputeBalancesWithLabels es ComputeBalances completando CostCenterLabel con el mapa
// id de centro de costo -> etiqueta. Un id sin etiqueta deja el campo en nil.
func ComputeBalancesWithLabels(
	lines []entity.LedgerLine,
	rangeStart, rangeEnd time.Time,
	costCenterLabels map[string]string,
) ([]BalanceRow, error) {
	r, err := NormalizeRange(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	return balancesIn(lines, r, costCenterLabels), nil
}

// OpeningBalance devuelve Σ(debe - haber) de las líneas anteriores al rango.
func OpeningBalance(lines []entity.LedgerLine, rangeStart, rangeEnd time.Time) (decimal.Decimal, error) {
	r, err := NormalizeRange(rangeStart, rangeEnd)
	if err != nil {
		return decimal.Zero, err
	}
	before, _ := partition(lines, r)
	return sum(before), nil
}

// ComputeNetMovement devuelve Σ(debe - haber) de las líneas dentro del rango.
func ComputeNetMovement(lines []entity.LedgerLine, rangeStart, rangeEnd time.Time) (decimal.Decimal, error) {
	r, err := NormalizeRange(rangeStart, rangeEnd)
	if err != nil {
		return decimal.Zero, err
	}
	_, within := partition(lines, r)
	return sum(within), nil
}

func balancesIn(lines []entity.LedgerLine, r Range, labels map[string]string) []BalanceRow {
	before, within := partition(lines, r)
	opening := sum(before)

	// Estable: dos líneas del mismo instante conservan el orden de entrada.
	sort.SliceStable(within, func(i, j int) bool {
		return within[i].Date.Before(within[j].Date)
	})

	rows := make([]BalanceRow, 0, len(within)+1)
	rows = append(rows, BalanceRow{
		Date:           r.Start,
		Description:    OpeningBalanceLabel,
		Debit:          decimal.Zero,
		Credit:         decimal.Zero,
		RunningBalance: opening,
	})

	running := opening
	for _, l := range within {
		running = running.Add(l.Net())
		rows = append(rows, BalanceRow{
			ID:              l.ID,
			Date:            l.Date,
			Description:     l.Description,
			Debit:           l.Debit,
			Credit:          l.Credit,
			CostCenterLabel: labelFor(l.CostCenterID, labels),
			RunningBalance:  running,
		})
	}
	return rows
}

// partition separa las líneas en anteriores al rango y dentro del rango.
// Devuelve slices nuevos; la entrada no se modifica.
func partition(lines []entity.LedgerLine, r Range) (before, within []entity.LedgerLine) {
	for _, l := range lines {
		switch {
		case r.Before(l.Date):
			before = append(before, l)
		case r.Contains(l.Date):
			within = append(within, l)
		}
	}
	return before, within
}

func sum(lines []entity.LedgerLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Net())
	}
	return total
}

func labelFor(costCenterID *string, labels map[string]string) *string {
	if costCenterID == nil || labels == nil {
		return nil
	}
	label, ok := labels[*costCenterID]
	if !ok {
		return nil
	}
	return &label
}
