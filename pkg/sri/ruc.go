package sri

import "github.com/jhoicas/contable-api/internal/domain"

// coeficientes del dígito verificador de la cédula (módulo 10), sobre los 9 primeros dígitos.
var cedulaWeights = [9]int{2, 1, 2, 1, 2, 1, 2, 1, 2}

// ValidateRUC valida la estructura del RUC ecuatoriano (13 dígitos).
//   - Provincia (2 primeros dígitos): 01–24 o 30.
//   - Tercer dígito: 0–5 persona natural, 6 sector público, 9 sociedad privada.
//   - Establecimiento (3 últimos): distinto de 000.
//
// Para personas naturales se verifica además el dígito de la cédula (módulo 10). En sociedades
// el SRI dejó de garantizar el módulo 11 en RUCs recientes, por eso no se verifica.
func ValidateRUC(ruc string) error {
	digits := extractDigits(ruc)
	if len(digits) != 13 || len(digits) != len(ruc) {
		return domain.NewValidationError("ruc", "debe tener 13 dígitos")
	}
	province := int(digits[0]-'0')*10 + int(digits[1]-'0')
	if (province < 1 || province > 24) && province != 30 {
		return domain.NewValidationError("ruc", "código de provincia %02d inválido", province)
	}
	third := digits[2] - '0'
	switch {
	case third <= 5:
		if err := validateCedula(digits[:10]); err != nil {
			return err
		}
	case third == 6, third == 9:
	default:
		return domain.NewValidationError("ruc", "tercer dígito %d inválido", third)
	}
	if string(digits[10:]) == "000" {
		return domain.NewValidationError("ruc", "el establecimiento no puede ser 000")
	}
	return nil
}

// validateCedula verifica el décimo dígito de una cédula (módulo 10).
func validateCedula(digits []byte) error {
	sum := 0
	for i, w := range cedulaWeights {
		p := int(digits[i]-'0') * w
		if p > 9 {
			p -= 9
		}
		sum += p
	}
	expected := (10 - sum%10) % 10
	if got := int(digits[9] - '0'); got != expected {
		return domain.NewValidationError("ruc", "dígito verificador de la cédula inválido: esperado %d, recibido %d", expected, got)
	}
	return nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return out
}
