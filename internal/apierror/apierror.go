// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Sentinel kinds. Services wrap these so handlers can map a business error to
// the right status code without string matching:
//
//	ErrConflicto    → 409 (caja ya abierta, caja cerrada, estado inesperado)
//	ErrValidacion   → 400 (carrito vacío, item desconocido, motivo corto)
//	ErrNoEncontrado → 404
var (
	ErrConflicto    = errors.New("conflicto")
	ErrValidacion   = errors.New("validacion")
	ErrNoEncontrado = errors.New("no encontrado")
)

// Conflicto wraps msg as a conflict error.
func Conflicto(msg string) error { return wrapped{kind: ErrConflicto, msg: msg} }

// Validacion wraps msg as a validation error.
func Validacion(msg string) error { return wrapped{kind: ErrValidacion, msg: msg} }

// NoEncontrado wraps msg as a not-found error.
func NoEncontrado(msg string) error { return wrapped{kind: ErrNoEncontrado, msg: msg} }

type wrapped struct {
	kind error
	msg  string
}

func (w wrapped) Error() string { return w.msg }
func (w wrapped) Unwrap() error { return w.kind }
