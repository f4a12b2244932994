package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrValidation        = errors.New("error de validación")
	ErrArithmetic        = errors.New("valor monetario no representable")
	ErrSequenceExhausted = errors.New("secuencial agotado para el punto de emisión")
)

// ValidationError describe un dato de entrada rechazado antes de calcular.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para el campo indicado.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ArithmeticError indica un monto que no pudo convertirse a decimal exacto.
type ArithmeticError struct {
	Field string
	Value string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: monto %q no representable como decimal", e.Field, e.Value)
}

// Is permite errors.Is(err, ErrArithmetic).
func (e *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}
