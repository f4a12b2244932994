package entity

import "time"

// Company representa un contribuyente/tenant del sistema (multi-tenant, enfoque Ecuador).
type Company struct {
	ID           string
	LegalName    string // Razón social tal como consta en el RUC
	TradeName    string // Nombre comercial
	RUC          string // 13 dígitos
	Address      string // Dirección matriz
	Environment  string // "1" = pruebas, "2" = producción (ambiente SRI)
	EmissionType string // "1" = normal
	Status       string // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
