package repository

import (
	"context"
	"time"

	"github.com/cronox/catalogo-api/internal/domain/entity"
)

// ListFilter describe un listado filtrado y paginado de productos.
// Name en blanco no filtra; si no, match por substring sin distinguir mayúsculas.
// SKU en blanco no filtra; si no, match exacto. Ambos se combinan con AND.
// Page es 0-based; Size >= 1.
type ListFilter struct {
	Name string
	SKU  string
	Page int
	Size int
}

// Offset devuelve el desplazamiento SQL de la ventana.
func (f ListFilter) Offset() int {
	return f.Page * f.Size
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe;
// Update, UpdateQuantity y Delete devuelven domain.ErrNotFound si no afectan filas.
type ProductRepository interface {
	// Create inserta el producto y asigna product.ID. Devuelve domain.ErrDuplicateSKU
	// si el constraint único de SKU rechaza el insert.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByIDForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	// ExistsBySKUExcluding verifica si otro producto (distinto id) ya usa el SKU.
	ExistsBySKUExcluding(ctx context.Context, sku string, id int64) (bool, error)
	// Update sobrescribe todos los campos mutables. Devuelve domain.ErrDuplicateSKU
	// si el nuevo SKU choca con el constraint único.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id int64, quantity int, updatedAt time.Time) error
	// List devuelve la ventana de productos y el total de coincidencias sin paginar.
	// Orden estable: id ascendente.
	List(ctx context.Context, filter ListFilter) ([]*entity.Product, int64, error)
	Delete(ctx context.Context, id int64) error
}
