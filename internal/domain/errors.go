package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("producto no encontrado")
	ErrDuplicateSKU      = errors.New("ya existe un producto con ese SKU")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("violación de integridad de datos")
)
