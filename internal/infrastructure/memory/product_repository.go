// Package memory implementa el puerto de persistencia sobre un mapa en memoria.
// Sirve para tests y para levantar el servicio sin PostgreSQL; respeta el mismo
// contrato que el adaptador de postgres (errores de dominio, orden por id,
// (nil, nil) cuando no existe).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cronox/catalogo-api/internal/domain"
	"github.com/cronox/catalogo-api/internal/domain/entity"
	"github.com/cronox/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria, seguro para concurrencia.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[int64]entity.Product
	nextID   int64
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[int64]entity.Product)}
}

// Create inserta el producto y asigna el siguiente id. Devuelve domain.ErrDuplicateSKU
// si el SKU ya está en uso, igual que el constraint único de la BD.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = *product
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// GetByIDForUpdate en memoria no bloquea fila: la atomicidad la da el TxRunner,
// que serializa las transacciones completas.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySKU obtiene un producto por SKU. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

// ExistsBySKU verifica si algún producto usa el SKU.
func (r *ProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	p, err := r.GetBySKU(ctx, sku)
	return p != nil, err
}

// ExistsBySKUExcluding verifica si otro producto (distinto id) ya usa el SKU.
func (r *ProductRepo) ExistsBySKUExcluding(ctx context.Context, sku string, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.SKU == sku && p.ID != id {
			return true, nil
		}
	}
	return false, nil
}

// Update sobrescribe todos los campos mutables. Devuelve domain.ErrNotFound si el id
// no existe y domain.ErrDuplicateSKU si otro producto ya usa el SKU.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.products {
		if p.SKU == product.SKU && p.ID != product.ID {
			return domain.ErrDuplicateSKU
		}
	}
	r.products[product.ID] = *product
	return nil
}

// UpdateQuantity escribe solo la cantidad y el timestamp.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = updatedAt
	r.products[id] = p
	return nil
}

// List aplica los mismos predicados que el adaptador de postgres: substring de
// nombre sin distinguir mayúsculas, SKU exacto, AND entre ambos, orden id asc.
func (r *ProductRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	sku := strings.TrimSpace(filter.SKU)

	var matches []entity.Product
	for _, p := range r.products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if sku != "" && p.SKU != sku {
			continue
		}
		matches = append(matches, p)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	total := int64(len(matches))
	start := filter.Offset()
	if start > len(matches) {
		start = len(matches)
	}
	end := start + filter.Size
	if end > len(matches) {
		end = len(matches)
	}

	list := make([]*entity.Product, 0, end-start)
	for i := start; i < end; i++ {
		p := matches[i]
		list = append(list, &p)
	}
	return list, total, nil
}

// Delete elimina un producto por ID. Devuelve domain.ErrNotFound si no había registro.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
