package entity

import "time"

// EmissionPoint punto de emisión autorizado por el SRI para un tipo de comprobante.
// La serie del comprobante es Establishment + Code (6 dígitos).
type EmissionPoint struct {
	ID             string
	CompanyID      string
	Establishment  string // 3 dígitos, ej: "001"
	Code           string // 3 dígitos, ej: "001"
	DocumentType   string // código SRI del comprobante, ej: "01"
	NextSequential int64  // próximo secuencial a asignar (1..999999999)
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Series devuelve la serie de 6 dígitos (establecimiento + punto de emisión).
func (p EmissionPoint) Series() string {
	return p.Establishment + p.Code
}
