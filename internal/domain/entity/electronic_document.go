package entity

import "time"

// Estados del comprobante electrónico dentro de este sistema.
// La autorización ante el SRI ocurre fuera (cliente SOAP externo).
const (
	DocumentStatusGenerated  = "GENERATED" // clave de acceso asignada, XML pendiente de firma
	DocumentStatusSent       = "SENT"
	DocumentStatusAuthorized = "AUTHORIZED"
	DocumentStatusRejected   = "REJECTED"
)

// ElectronicDocument comprobante al que se asignó secuencial y clave de acceso.
type ElectronicDocument struct {
	ID              string
	CompanyID       string
	EmissionPointID string
	DocumentType    string
	Series          string // 6 dígitos
	Sequential      string // 9 dígitos
	IssueDate       time.Time
	NumericCode     string // 8 dígitos
	Environment     string
	EmissionType    string
	AccessKey       string // 49 dígitos
	Status          string
	CreatedBy       string
	CreatedAt       time.Time
}
