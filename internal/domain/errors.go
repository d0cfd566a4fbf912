package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrValidation        = errors.New("error de validación")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrRoomFull          = errors.New("la habitación ya alcanzó su capacidad máxima")
	ErrGuestRoomMismatch = errors.New("el huésped no pertenece a la habitación seleccionada")
)

// ValidationError es un error asociado a un campo concreto de la entrada.
// Siempre coincide con ErrValidation y, si se indicó, con un error más específico
// (ErrInsufficientStock, ErrRoomFull, ErrGuestRoomMismatch, ErrDuplicate).
type ValidationError struct {
	Field   string
	Message string
	Kind    error
}

// NewValidationError crea un error de validación genérico para un campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorOf crea un error de validación que además coincide con kind.
func NewValidationErrorOf(kind error, field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Kind: kind}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Kind == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Kind}
}
