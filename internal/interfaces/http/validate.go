package http

import (
	"strings"

	"github.com/cronox/catalogo-api/internal/application/dto"
)

// ValidationError acumula violaciones estructurales del request como pares
// "campo: razón". El error handler lo mapea a 400 con el mensaje unido por comas.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ", ")
}

func newValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// validateProductRequest valida los constraints estructurales del body
// (presencia, no-blanco, no-negativo). Las invariantes de negocio no van aquí.
func validateProductRequest(in dto.ProductRequest) error {
	var fields []string
	if strings.TrimSpace(in.SKU) == "" {
		fields = append(fields, "sku: es requerido")
	}
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name: es requerido")
	}
	switch {
	case in.PriceCents == nil:
		fields = append(fields, "priceCents: es requerido")
	case *in.PriceCents < 0:
		fields = append(fields, "priceCents: debe ser mayor o igual a cero")
	}
	switch {
	case in.Quantity == nil:
		fields = append(fields, "quantity: es requerido")
	case *in.Quantity < 0:
		fields = append(fields, "quantity: debe ser mayor o igual a cero")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validateAdjustRequest valida el body del ajuste de cantidad.
func validateAdjustRequest(in dto.AdjustQuantityRequest) error {
	if in.Delta == nil {
		return newValidationError("delta: es requerido")
	}
	return nil
}
