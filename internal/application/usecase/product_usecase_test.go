package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronox/catalogo-api/internal/application/dto"
	"github.com/cronox/catalogo-api/internal/application/usecase"
	"github.com/cronox/catalogo-api/internal/domain"
	"github.com/cronox/catalogo-api/internal/domain/repository"
	"github.com/cronox/catalogo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newUC() *usecase.ProductUseCase {
	repo := memory.NewProductRepository()
	return usecase.NewProductUseCase(repo, memory.NewTxRunner(repo))
}

func productReq(sku, name string, priceCents int64, quantity int) dto.ProductRequest {
	return dto.ProductRequest{
		SKU:        sku,
		Name:       name,
		PriceCents: &priceCents,
		Quantity:   &quantity,
	}
}

func mustCreate(t *testing.T, uc *usecase.ProductUseCase, in dto.ProductRequest) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err, "el producto debe crearse sin error")
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / GetByID
// ──────────────────────────────────────────────────────────────────────────────

// Crear y leer: los campos mutables vuelven exactos, con id y updatedAt asignados.
func TestCreate_RoundTrip(t *testing.T) {
	uc := newUC()
	desc := "camiseta roja de algodón"
	in := productReq("SKU-1", "Red Shirt", 1200, 10)
	in.Description = &desc

	created := mustCreate(t, uc, in)
	assert.NotZero(t, created.ID, "la BD debe asignar un id")
	assert.False(t, created.UpdatedAt.IsZero(), "updatedAt debe quedar asignado al crear")

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", got.SKU)
	assert.Equal(t, "Red Shirt", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Equal(t, int64(1200), got.PriceCents)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreate_SKUDuplicado(t *testing.T) {
	uc := newUC()
	mustCreate(t, uc, productReq("SKU-1", "Red Shirt", 1200, 10))

	_, err := uc.Create(context.Background(), productReq("SKU-1", "Otro producto", 900, 1))
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU,
		"el segundo create con el mismo SKU debe fallar")

	// Debe sobrevivir exactamente un registro con ese SKU
	page, err := uc.List(context.Background(), repository.ListFilter{SKU: "SKU-1", Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "Red Shirt", page.Content[0].Name)
}

func TestCreate_IDsUnicos(t *testing.T) {
	uc := newUC()
	a := mustCreate(t, uc, productReq("SKU-1", "A", 100, 1))
	b := mustCreate(t, uc, productReq("SKU-2", "B", 100, 1))
	assert.NotEqual(t, a.ID, b.ID, "cada producto recibe un id propio")
}

func TestGetByID_NoExiste(t *testing.T) {
	uc := newUC()
	_, err := uc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SobrescribeCamposYRefrescaTimestamp(t *testing.T) {
	uc := newUC()
	created := mustCreate(t, uc, productReq("SKU-1", "Red Shirt", 1200, 10))

	updated, err := uc.Update(context.Background(), created.ID, productReq("SKU-1B", "Blue Shirt", 1500, 7))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "el id es inmutable")
	assert.Equal(t, "SKU-1B", updated.SKU)
	assert.Equal(t, "Blue Shirt", updated.Name)
	assert.Equal(t, int64(1500), updated.PriceCents)
	assert.Equal(t, 7, updated.Quantity)
	assert.Nil(t, updated.Description, "description ausente en el request sobrescribe a null")
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt),
		"updatedAt debe refrescarse en cada mutación")
}

func TestUpdate_NoExiste(t *testing.T) {
	uc := newUC()
	_, err := uc.Update(context.Background(), 999, productReq("SKU-1", "X", 100, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_SKUDeOtroProducto(t *testing.T) {
	uc := newUC()
	mustCreate(t, uc, productReq("SKU-1", "A", 100, 1))
	b := mustCreate(t, uc, productReq("SKU-2", "B", 100, 1))

	_, err := uc.Update(context.Background(), b.ID, productReq("SKU-1", "B", 100, 1))
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU,
		"no se puede tomar el SKU de otro producto")
}

func TestUpdate_ConservarPropioSKU(t *testing.T) {
	uc := newUC()
	created := mustCreate(t, uc, productReq("SKU-1", "A", 100, 1))

	updated, err := uc.Update(context.Background(), created.ID, productReq("SKU-1", "A2", 200, 2))
	require.NoError(t, err, "mantener el propio SKU no es conflicto")
	assert.Equal(t, "A2", updated.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustQuantity_AplicaDelta(t *testing.T) {
	uc := newUC()
	created := mustCreate(t, uc, productReq("SKU-1", "Test Product", 1200, 10))

	out, err := uc.AdjustQuantity(context.Background(), created.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Quantity, "10 - 2 = 8")
	assert.False(t, out.UpdatedAt.Before(created.UpdatedAt))
}

func TestAdjustQuantity_StockInsuficiente(t *testing.T) {
	uc := newUC()
	created := mustCreate(t, uc, productReq("SKU-1", "Test Product", 1200, 3))

	_, err := uc.AdjustQuantity(context.Background(), created.ID, -5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La cantidad almacenada no debe haber cambiado
	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity, "un ajuste rechazado no toca el stock")
}

func TestAdjustQuantity_NoExiste(t *testing.T) {
	uc := newUC()
	_, err := uc.AdjustQuantity(context.Background(), 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// N ajustes concurrentes con deltas que suman D: la cantidad final debe ser
// exactamente Q + D (sin lost updates).
func TestAdjustQuantity_ConcurrenciaSinLostUpdates(t *testing.T) {
	uc := newUC()
	created := mustCreate(t, uc, productReq("SKU-1", "Concurrente", 1000, 100))

	const n = 50
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.AdjustQuantity(context.Background(), created.ID, 3)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := uc.AdjustQuantity(context.Background(), created.ID, -1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100+n*3-n*1, got.Quantity,
		"la suma de los deltas debe aplicarse exacta")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpsertBySKU
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertBySKU_CreaSiNoExiste(t *testing.T) {
	uc := newUC()
	out, err := uc.UpsertBySKU(context.Background(), productReq("SKU-9", "Nuevo", 500, 2))
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Nuevo", out.Name)
}

func TestUpsertBySKU_ActualizaSiExiste(t *testing.T) {
	uc := newUC()
	created := mustCreate(t, uc, productReq("SKU-9", "Original", 500, 2))

	out, err := uc.UpsertBySKU(context.Background(), productReq("SKU-9", "Renombrado", 800, 6))
	require.NoError(t, err, "upsert por SKU nunca falla por duplicado")
	assert.Equal(t, created.ID, out.ID, "el upsert conserva el id existente")
	assert.Equal(t, "Renombrado", out.Name)
	assert.Equal(t, int64(800), out.PriceCents)
	assert.Equal(t, 6, out.Quantity)

	page, err := uc.List(context.Background(), repository.ListFilter{SKU: "SKU-9", Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements, "sigue habiendo un solo registro con ese SKU")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_LuegoGetNotFound(t *testing.T) {
	uc := newUC()
	created := mustCreate(t, uc, productReq("SKU-1", "A", 100, 1))

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err := uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_NoExiste(t *testing.T) {
	uc := newUC()
	err := uc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PaginacionConVentanaDeUno(t *testing.T) {
	uc := newUC()
	a := mustCreate(t, uc, productReq("SKU-1", "Red Shirt", 1200, 10))
	b := mustCreate(t, uc, productReq("SKU-2", "Blue Shirt", 1300, 5))

	page0, err := uc.List(context.Background(), repository.ListFilter{Name: "shirt", Page: 0, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page0.TotalElements)
	assert.Equal(t, 2, page0.TotalPages)
	assert.Equal(t, 0, page0.PageNumber)
	assert.Equal(t, 1, page0.PageSize)
	require.Len(t, page0.Content, 1)
	assert.Equal(t, a.ID, page0.Content[0].ID, "orden estable por id ascendente")

	page1, err := uc.List(context.Background(), repository.ListFilter{Name: "shirt", Page: 1, Size: 1})
	require.NoError(t, err)
	require.Len(t, page1.Content, 1)
	assert.Equal(t, b.ID, page1.Content[0].ID)
}

func TestList_FiltroNombreSinMayusculas(t *testing.T) {
	uc := newUC()
	mustCreate(t, uc, productReq("SKU-1", "Red Shirt", 1200, 10))
	mustCreate(t, uc, productReq("SKU-2", "Blue Pants", 900, 4))

	page, err := uc.List(context.Background(), repository.ListFilter{Name: "shirt", Size: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "Red Shirt", page.Content[0].Name,
		"\"shirt\" debe matchear \"Red Shirt\" y excluir \"Blue Pants\"")
}

func TestList_FiltrosCombinadosConAND(t *testing.T) {
	uc := newUC()
	mustCreate(t, uc, productReq("SKU-1", "Red Shirt", 1200, 10))
	mustCreate(t, uc, productReq("SKU-2", "Blue Shirt", 1300, 5))

	page, err := uc.List(context.Background(), repository.ListFilter{Name: "shirt", SKU: "SKU-2", Size: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "SKU-2", page.Content[0].SKU)
}

func TestList_SinFiltrosDevuelveTodo(t *testing.T) {
	uc := newUC()
	mustCreate(t, uc, productReq("SKU-1", "A", 100, 1))
	mustCreate(t, uc, productReq("SKU-2", "B", 100, 1))

	page, err := uc.List(context.Background(), repository.ListFilter{Name: "   ", Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements, "filtro en blanco no filtra")
	assert.Equal(t, 1, page.TotalPages)
}

func TestList_VacioDevuelveCeroPaginas(t *testing.T) {
	uc := newUC()
	page, err := uc.List(context.Background(), repository.ListFilter{Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalElements)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Content)
}

func TestList_ParametrosInvalidos(t *testing.T) {
	uc := newUC()
	_, err := uc.List(context.Background(), repository.ListFilter{Page: -1, Size: 20})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(context.Background(), repository.ListFilter{Page: 0, Size: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
