package sri

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/contable-api/internal/domain"
)

// Longitudes de la clave de acceso.
const (
	RawKeyLength    = 48
	AccessKeyLength = 49
	dateLayout      = "02012006" // ddmmaaaa
)

// Ancho de cada campo numérico de la clave (ficha técnica, Tabla 1).
const (
	widthDocType    = 2
	widthTaxpayerID = 13
	widthSeries     = 6
	widthSequential = 9
	widthNumeric    = 8
	widthEmission   = 1
)

// AccessKeyParams datos de la clave de acceso en el orden de la ficha técnica.
// Los campos numéricos más cortos que su ancho se completan con ceros a la izquierda.
type AccessKeyParams struct {
	IssueDate    time.Time
	DocumentType string      // 2 dígitos, ver DocumentTypes
	TaxpayerID   string      // RUC del emisor, hasta 13 dígitos
	Environment  Environment // TEST o PRODUCTION
	Series       string      // establecimiento + punto de emisión, 6 dígitos
	Sequential   string      // 9 dígitos
	NumericCode  string      // 8 dígitos
	EmissionType string      // 1 dígito: 1 normal, 2 contingencia, 3 offline
}

// AccessKeyParts campos decodificados de una clave de acceso.
type AccessKeyParts struct {
	IssueDate     time.Time   `json:"issue_date"`
	DocumentType  string      `json:"document_type"`
	TaxpayerID    string      `json:"taxpayer_id"`
	Environment   Environment `json:"environment"`
	Establishment string      `json:"establishment"`
	EmissionPoint string      `json:"emission_point"`
	Sequential    string      `json:"sequential"`
	NumericCode   string      `json:"numeric_code"`
	EmissionType  string      `json:"emission_type"`
	CheckDigit    int         `json:"check_digit"`
}

// GenerateAccessKey concatena los campos con ancho fijo y agrega el dígito verificador módulo 11.
// Cualquier campo vacío, no numérico o más largo que su ancho produce un ValidationError;
// la clave nunca se genera con datos corruptos.
func GenerateAccessKey(p AccessKeyParams) (string, error) {
	var errs []error
	if p.IssueDate.IsZero() {
		errs = append(errs, domain.NewValidationError("issue_date", "fecha de emisión requerida"))
	}

	docType, err := padNumeric("document_type", p.DocumentType, widthDocType)
	if err != nil {
		errs = append(errs, err)
	} else if _, ok := DocumentTypes[docType]; !ok {
		errs = append(errs, domain.NewValidationError("document_type", "tipo de comprobante %q no soportado", docType))
	}
	taxpayer, err := padNumeric("taxpayer_id", p.TaxpayerID, widthTaxpayerID)
	if err != nil {
		errs = append(errs, err)
	}
	envCode := p.Environment.Code()
	if envCode == "" {
		errs = append(errs, domain.NewValidationError("environment", "ambiente %q inválido", p.Environment))
	}
	series, err := padNumeric("series", p.Series, widthSeries)
	if err != nil {
		errs = append(errs, err)
	}
	sequential, err := padNumeric("sequential", p.Sequential, widthSequential)
	if err != nil {
		errs = append(errs, err)
	}
	numeric, err := padNumeric("numeric_code", p.NumericCode, widthNumeric)
	if err != nil {
		errs = append(errs, err)
	}
	emission, err := padNumeric("emission_type", p.EmissionType, widthEmission)
	if err != nil {
		errs = append(errs, err)
	} else if !IsEmissionType(emission) {
		errs = append(errs, domain.NewValidationError("emission_type", "tipo de emisión %q inválido", emission))
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	raw := p.IssueDate.Format(dateLayout) +
		docType +
		taxpayer +
		envCode +
		series +
		sequential +
		numeric +
		emission

	dv, err := CheckDigit(raw)
	if err != nil {
		return "", err
	}
	return raw + strconv.Itoa(dv), nil
}

// CheckDigit calcula el dígito verificador módulo 11 de la clave cruda de 48 dígitos.
// Pesos 2..7 cíclicos desde el dígito más a la derecha; resultado 11 -> 0, 10 -> 1.
func CheckDigit(raw string) (int, error) {
	if len(raw) != RawKeyLength {
		return 0, domain.NewValidationError("access_key", "la clave sin verificador debe tener %d dígitos, tiene %d", RawKeyLength, len(raw))
	}
	if !isDigits(raw) {
		return 0, domain.NewValidationError("access_key", "la clave solo admite dígitos")
	}

	sum := 0
	weight := 2
	for i := len(raw) - 1; i >= 0; i-- {
		sum += int(raw[i]-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}

	dv := 11 - sum%11
	switch dv {
	case 11:
		return 0, nil
	case 10:
		return 1, nil
	}
	return dv, nil
}

// VerifyAccessKey comprueba longitud, dígitos y verificador de una clave de 49 dígitos.
func VerifyAccessKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) != AccessKeyLength {
		return domain.NewValidationError("access_key", "la clave debe tener %d dígitos, tiene %d", AccessKeyLength, len(key))
	}
	if !isDigits(key) {
		return domain.NewValidationError("access_key", "la clave solo admite dígitos")
	}
	dv, err := CheckDigit(key[:RawKeyLength])
	if err != nil {
		return err
	}
	if got := int(key[RawKeyLength] - '0'); got != dv {
		return domain.NewValidationError("access_key", "dígito verificador inválido: esperado %d, recibido %d", dv, got)
	}
	return nil
}

// ParseAccessKey valida la clave y devuelve sus campos.
func ParseAccessKey(key string) (*AccessKeyParts, error) {
	key = strings.TrimSpace(key)
	if err := VerifyAccessKey(key); err != nil {
		return nil, err
	}
	issueDate, err := time.Parse(dateLayout, key[0:8])
	if err != nil {
		return nil, domain.NewValidationError("access_key", "fecha de emisión %q inválida", key[0:8])
	}
	env, ok := ParseEnvironment(key[23:24])
	if !ok {
		return nil, domain.NewValidationError("access_key", "ambiente %q inválido", key[23:24])
	}
	return &AccessKeyParts{
		IssueDate:     issueDate,
		DocumentType:  key[8:10],
		TaxpayerID:    key[10:23],
		Environment:   env,
		Establishment: key[24:27],
		EmissionPoint: key[27:30],
		Sequential:    key[30:39],
		NumericCode:   key[39:47],
		EmissionType:  key[47:48],
		CheckDigit:    int(key[48] - '0'),
	}, nil
}

// padNumeric exige solo dígitos y completa con ceros a la izquierda hasta width.
func padNumeric(field, value string, width int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError(field, "requerido")
	}
	if !isDigits(value) {
		return "", domain.NewValidationError(field, "solo admite dígitos: %q", value)
	}
	if len(value) > width {
		return "", domain.NewValidationError(field, "máximo %d dígitos, recibidos %d", width, len(value))
	}
	return strings.Repeat("0", width-len(value)) + value, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
