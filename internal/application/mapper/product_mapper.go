// Package mapper copia datos entre los shapes HTTP (dto) y la entidad persistida.
// Sin estado y sin decisiones: la validación estructural es del borde HTTP y las
// invariantes de negocio son del caso de uso.
package mapper

import (
	"github.com/cronox/catalogo-api/internal/application/dto"
	"github.com/cronox/catalogo-api/internal/domain/entity"
)

// ToEntity construye un producto nuevo a partir del request.
// No asigna ID ni UpdatedAt: el ID lo pone la base de datos y el timestamp el caso de uso.
func ToEntity(in dto.ProductRequest) *entity.Product {
	p := &entity.Product{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
	}
	if in.PriceCents != nil {
		p.PriceCents = *in.PriceCents
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	return p
}

// ApplyRequest sobrescribe todos los campos mutables de un producto existente.
// ID y UpdatedAt quedan intactos.
func ApplyRequest(p *entity.Product, in dto.ProductRequest) {
	p.SKU = in.SKU
	p.Name = in.Name
	p.Description = in.Description
	if in.PriceCents != nil {
		p.PriceCents = *in.PriceCents
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
}

// ToResponse copia todos los campos del producto, incluidos ID y UpdatedAt.
func ToResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Quantity:    p.Quantity,
		UpdatedAt:   p.UpdatedAt,
	}
}
