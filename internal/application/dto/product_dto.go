package dto

import "time"

// ProductRequest entrada para crear, actualizar o upsert de un producto.
// PriceCents y Quantity son punteros para distinguir "campo ausente" de cero
// (la validación estructural ocurre en el borde HTTP, no aquí).
type ProductRequest struct {
	SKU         string  `json:"sku" validate:"required,min=1,max=64"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"priceCents" validate:"required,min=0"`
	Quantity    *int    `json:"quantity" validate:"required,min=0"`
}

// AdjustQuantityRequest entrada para ajustar la cantidad en stock (delta con signo).
type AdjustQuantityRequest struct {
	Delta *int `json:"delta" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PagedProductResponse lista paginada de productos con metadatos de página.
type PagedProductResponse struct {
	Content       []ProductResponse `json:"content"`
	PageNumber    int               `json:"pageNumber"`
	PageSize      int               `json:"pageSize"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}
