// Package sri contiene catálogos y algoritmos del esquema de comprobantes electrónicos del
// SRI (Servicio de Rentas Internas, Ecuador), Ficha Técnica de Comprobantes Electrónicos
// Esquema Offline.
package sri

import "strings"

// Tipos de comprobante (Tabla 3 de la ficha técnica).
const (
	DocTypeInvoice       = "01" // Factura
	DocTypePurchaseClear = "03" // Liquidación de compra de bienes y prestación de servicios
	DocTypeCreditNote    = "04" // Nota de crédito
	DocTypeDebitNote     = "05" // Nota de débito
	DocTypeWaybill       = "06" // Guía de remisión
	DocTypeWithholding   = "07" // Comprobante de retención
)

// DocumentTypes nombre legible por código de comprobante.
var DocumentTypes = map[string]string{
	DocTypeInvoice:       "FACTURA",
	DocTypePurchaseClear: "LIQUIDACIÓN DE COMPRA DE BIENES Y PRESTACIÓN DE SERVICIOS",
	DocTypeCreditNote:    "NOTA DE CRÉDITO",
	DocTypeDebitNote:     "NOTA DE DÉBITO",
	DocTypeWaybill:       "GUÍA DE REMISIÓN",
	DocTypeWithholding:   "COMPROBANTE DE RETENCIÓN",
}

// Tipos de emisión.
const (
	EmissionNormal      = "1"
	EmissionContingency = "2"
	EmissionOffline     = "3"
)

// IsEmissionType indica si el código pertenece al catálogo de tipos de emisión.
func IsEmissionType(code string) bool {
	return code == EmissionNormal || code == EmissionContingency || code == EmissionOffline
}

// Environment ambiente del SRI en el que se emite el comprobante.
type Environment string

const (
	EnvironmentTest       Environment = "TEST"
	EnvironmentProduction Environment = "PRODUCTION"
)

// Code devuelve el dígito del ambiente en la clave de acceso: 1 pruebas, 2 producción.
// Devuelve "" si el ambiente no es válido.
func (e Environment) Code() string {
	switch e {
	case EnvironmentTest:
		return "1"
	case EnvironmentProduction:
		return "2"
	}
	return ""
}

// ParseEnvironment acepta el nombre ("TEST", "PRODUCTION", "pruebas", "produccion") o el dígito
// ("1", "2") y devuelve el ambiente. ok es false si el valor no se reconoce.
func ParseEnvironment(s string) (Environment, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "TEST", "PRUEBAS":
		return EnvironmentTest, true
	case "2", "PRODUCTION", "PRODUCCION", "PRODUCCIÓN":
		return EnvironmentProduction, true
	}
	return "", false
}
