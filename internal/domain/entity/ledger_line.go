package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine es un movimiento contabilizado contra una cuenta en una fecha.
// Lo produce el proceso de mayorización de asientos; aquí solo se lee.
type LedgerLine struct {
	ID           string
	AccountID    string
	Date         time.Time
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	CostCenterID *string
	Description  string
}

// Net devuelve debe - haber.
func (l LedgerLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}
