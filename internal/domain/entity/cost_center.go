package entity

// CostCenter centro de costo usado como filtro opcional de los movimientos.
type CostCenter struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
}

// Label texto que acompaña a cada fila del mayor ("CC01 - Ventas").
func (c CostCenter) Label() string {
	if c.Code == "" {
		return c.Name
	}
	return c.Code + " - " + c.Name
}
