package ledger

import (
	"sort"
	"time"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AccountSummary saldo de una cuenta dentro de un reporte de varias cuentas.
type AccountSummary struct {
	AccountID   string             `json:"account_id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType entity.AccountType `json:"account_type"`
	Balance     decimal.Decimal    `json:"balance"`
}

// BalanceSheet estado de situación: lista plana de cuentas de activo, pasivo y patrimonio.
// No se consolidan cuentas hijas en sus padres.
type BalanceSheet struct {
	Range            Range
	Rows             []AccountSummary
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
}

// IncomeStatement estado de resultados del período. Rows contiene ingresos y gastos ordenados
// por código y, al final, la fila sintética de utilidad o pérdida.
type IncomeStatement struct {
	Range        Range
	Rows         []AccountSummary
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetResult    decimal.Decimal // TotalIncome - TotalExpense
	ResultLabel  string
}

// BuildBalanceSheet calcula para cada cuenta de estado de situación su saldo inicial más el
// movimiento del período (el último saldo corrido). linesByAccount se indexa por AccountID.
func BuildBalanceSheet(
	accounts []entity.Account,
	linesByAccount map[string][]entity.LedgerLine,
	rangeStart, rangeEnd time.Time,
) (*BalanceSheet, error) {
	r, err := NormalizeRange(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	sheet := &BalanceSheet{
		Range:            r,
		Rows:             []AccountSummary{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, acc := range sortedByCode(accounts) {
		if !acc.Type.IsBalanceSheet() {
			continue
		}
		rows := balancesIn(linesByAccount[acc.ID], r, nil)
		balance := rows[len(rows)-1].RunningBalance
		sheet.Rows = append(sheet.Rows, summaryOf(acc, balance))

		switch acc.Type {
		case entity.AccountTypeAsset:
			sheet.TotalAssets = sheet.TotalAssets.Add(balance)
		case entity.AccountTypeLiability:
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(balance)
		case entity.AccountTypeEquity:
			sheet.TotalEquity = sheet.TotalEquity.Add(balance)
		}
	}
	return sheet, nil
}

// BuildIncomeStatement usa solo las líneas dentro del rango: las cuentas de resultados no
// arrastran saldo inicial. Los ingresos son de naturaleza acreedora, así que su neto se invierte.
func BuildIncomeStatement(
	accounts []entity.Account,
	linesByAccount map[string][]entity.LedgerLine,
	rangeStart, rangeEnd time.Time,
) (*IncomeStatement, error) {
	r, err := NormalizeRange(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	st := &IncomeStatement{
		Range:        r,
		Rows:         []AccountSummary{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, acc := range sortedByCode(accounts) {
		if !acc.Type.IsIncomeStatement() {
			continue
		}
		_, within := partition(linesByAccount[acc.ID], r)
		net := sum(within)

		switch acc.Type {
		case entity.AccountTypeIncome:
			net = net.Neg()
			st.TotalIncome = st.TotalIncome.Add(net)
		case entity.AccountTypeExpense:
			st.TotalExpense = st.TotalExpense.Add(net)
		}
		st.Rows = append(st.Rows, summaryOf(acc, net))
	}

	st.NetResult = st.TotalIncome.Sub(st.TotalExpense)
	st.ResultLabel = ProfitLabel
	if st.NetResult.IsNegative() {
		st.ResultLabel = LossLabel
	}
	st.Rows = append(st.Rows, AccountSummary{Name: st.ResultLabel, Balance: st.NetResult})
	return st, nil
}

// GroupByAccount indexa las líneas por AccountID conservando el orden de entrada.
func GroupByAccount(lines []entity.LedgerLine) map[string][]entity.LedgerLine {
	out := make(map[string][]entity.LedgerLine)
	for _, l := range lines {
		out[l.AccountID] = append(out[l.AccountID], l)
	}
	return out
}

func summaryOf(acc entity.Account, balance decimal.Decimal) AccountSummary {
	return AccountSummary{
		AccountID:   acc.ID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.Type,
		Balance:     balance,
	}
}

func sortedByCode(accounts []entity.Account) []entity.Account {
	out := make([]entity.Account, len(accounts))
	copy(out, accounts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
