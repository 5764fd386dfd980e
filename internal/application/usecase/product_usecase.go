package usecase

import (
	"context"
	"time"

	"github.com/cronox/catalogo-api/internal/application/dto"
	"github.com/cronox/catalogo-api/internal/application/mapper"
	"github.com/cronox/catalogo-api/internal/domain"
	"github.com/cronox/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. Concentra todas las invariantes
// de negocio: unicidad de SKU, existencia, stock no negativo y refresco de UpdatedAt.
// Las mutaciones read-modify-write (AdjustQuantity, UpsertBySKU) pasan por el TxRunner
// con bloqueo de fila; Create y Update confían en el constraint único de SKU como
// respaldo ante carreras.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx}
}

// List lista productos filtrados y paginados. Page es 0-based y Size >= 1.
// TotalElements se cuenta sin la ventana; TotalPages = ceil(total/size).
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ListFilter) (*dto.PagedProductResponse, error) {
	if filter.Page < 0 || filter.Size < 1 {
		return nil, domain.ErrInvalidInput
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	content := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		content = append(content, mapper.ToResponse(p))
	}
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(filter.Size) - 1) / int64(filter.Size))
	}
	return &dto.PagedProductResponse{
		Content:       content,
		PageNumber:    filter.Page,
		PageSize:      filter.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := mapper.ToResponse(product)
	return &out, nil
}

// Create crea un producto nuevo. Rechaza SKU duplicado; si otra transacción gana la
// carrera entre el check y el insert, el constraint único de la BD la convierte
// igualmente en ErrDuplicateSKU.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	exists, err := uc.repo.ExistsBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateSKU
	}
	product := mapper.ToEntity(in)
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := mapper.ToResponse(product)
	return &out, nil
}

// Update sobrescribe todos los campos mutables de un producto existente y
// refresca UpdatedAt. Rechaza SKU que ya use otro producto.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	taken, err := uc.repo.ExistsBySKUExcluding(ctx, in.SKU, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateSKU
	}
	mapper.ApplyRequest(product, in)
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := mapper.ToResponse(product)
	return &out, nil
}

// AdjustQuantity suma delta (con signo) a la cantidad en stock dentro de una
// transacción con bloqueo de fila (SELECT FOR UPDATE), para que dos ajustes
// concurrentes nunca lean la misma cantidad vieja. Si el resultado quedaría
// negativo, la cantidad almacenada no cambia y devuelve ErrInsufficientStock.
func (uc *ProductUseCase) AdjustQuantity(ctx context.Context, id int64, delta int) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.tx.Run(ctx, func(repo repository.ProductRepository) error {
		product, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newQuantity := product.Quantity + delta
		if newQuantity < 0 {
			return domain.ErrInsufficientStock
		}
		now := time.Now().UTC()
		if err := repo.UpdateQuantity(ctx, id, newQuantity, now); err != nil {
			return err
		}
		product.Quantity = newQuantity
		product.UpdatedAt = now
		out = mapper.ToResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpsertBySKU actualiza el producto con ese SKU si existe, o lo crea si no.
// Por construcción nunca falla por SKU duplicado: la clave del upsert es el propio SKU.
// Corre en una transacción para que la decisión crear-o-actualizar sea atómica.
func (uc *ProductUseCase) UpsertBySKU(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.tx.Run(ctx, func(repo repository.ProductRepository) error {
		existing, err := repo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return err
		}
		if existing == nil {
			product := mapper.ToEntity(in)
			product.UpdatedAt = time.Now().UTC()
			if err := repo.Create(ctx, product); err != nil {
				return err
			}
			out = mapper.ToResponse(product)
			return nil
		}
		mapper.ApplyRequest(existing, in)
		existing.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, existing); err != nil {
			return err
		}
		out = mapper.ToResponse(existing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina un producto de forma definitiva (sin tombstone).
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
