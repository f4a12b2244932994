package dto

import (
	"time"

	"github.com/jhoicas/contable-api/pkg/sri"
)

// IssueAccessKeyRequest body de POST /api/documents/access-keys.
type IssueAccessKeyRequest struct {
	DocumentType  string `json:"document_type"`  // código SRI, ej: "01"
	Establishment string `json:"establishment"`  // 3 dígitos
	EmissionPoint string `json:"emission_point"` // 3 dígitos
	IssueDate     string `json:"issue_date"`     // YYYY-MM-DD; por defecto hoy
	NumericCode   string `json:"numeric_code"`   // opcional, 8 dígitos; si falta se genera al azar
}

// IssuedDocumentDTO comprobante numerado con su clave de acceso.
type IssuedDocumentDTO struct {
	ID             string    `json:"id"`
	AccessKey      string    `json:"access_key"`
	DocumentType   string    `json:"document_type"`
	Series         string    `json:"series"`
	Sequential     string    `json:"sequential"`
	IssueDate      string    `json:"issue_date"`
	Environment    string    `json:"environment"`
	EmissionType   string    `json:"emission_type"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	InfoTributaria string    `json:"info_tributaria,omitempty"` // bloque XML <infoTributaria>
}

// VerifyAccessKeyRequest body de POST /api/documents/access-keys/verify.
type VerifyAccessKeyRequest struct {
	AccessKey string `json:"access_key"`
}

// AccessKeyVerificationDTO resultado de verificar una clave. Parts solo viene si Valid.
type AccessKeyVerificationDTO struct {
	AccessKey string              `json:"access_key"`
	Valid     bool                `json:"valid"`
	Message   string              `json:"message,omitempty"`
	Parts     *sri.AccessKeyParts `json:"parts,omitempty"`
}

// CreateEmissionPointRequest body de POST /api/emission-points.
type CreateEmissionPointRequest struct {
	Establishment  string `json:"establishment"`
	Code           string `json:"code"`
	DocumentType   string `json:"document_type"`
	NextSequential int64  `json:"next_sequential"` // 0 = empezar en 1
}

// EmissionPointDTO punto de emisión.
type EmissionPointDTO struct {
	ID             string    `json:"id"`
	Establishment  string    `json:"establishment"`
	Code           string    `json:"code"`
	Series         string    `json:"series"`
	DocumentType   string    `json:"document_type"`
	NextSequential int64     `json:"next_sequential"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
