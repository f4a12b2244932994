package entity

import "time"

// AccountType clasifica una cuenta del plan de cuentas.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid indica si el tipo pertenece al catálogo.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// IsBalanceSheet es verdadero para cuentas de estado de situación (activo, pasivo, patrimonio).
func (t AccountType) IsBalanceSheet() bool {
	return t == AccountTypeAsset || t == AccountTypeLiability || t == AccountTypeEquity
}

// IsIncomeStatement es verdadero para cuentas de resultados.
func (t AccountType) IsIncomeStatement() bool {
	return t == AccountTypeIncome || t == AccountTypeExpense
}

// Account representa una cuenta contable del plan de cuentas de una empresa.
type Account struct {
	ID        string
	CompanyID string
	Code      string // ej: "1.1.01.001"
	Name      string
	Type      AccountType
	ParentID  *string // jerarquía del plan; los reportes no consolidan en la cuenta padre
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
