package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cronox/catalogo-api/internal/application/dto"
	"github.com/cronox/catalogo-api/internal/application/usecase"
	"github.com/cronox/catalogo-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product. Valida los constraints
// estructurales del request y delega las invariantes de negocio al caso de uso;
// los errores suben al ErrorHandler de la app.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        page  query  int     false  "Página (0-based)"  default(0)
// @Param        size  query  int     false  "Tamaño de página"  default(20)
// @Param        name  query  string  false  "Filtro por nombre (substring, sin mayúsculas)"
// @Param        sku   query  string  false  "Filtro por SKU (exacto)"
// @Success      200   {object}  dto.PagedProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 20)
	if page < 0 {
		return newValidationError("page: debe ser mayor o igual a cero")
	}
	if size < 1 {
		return newValidationError("size: debe ser al menos 1")
	}
	if size > 100 {
		size = 100
	}
	out, err := h.uc.List(c.Context(), repository.ListFilter{
		Name: c.Query("name"),
		SKU:  c.Query("sku"),
		Page: page,
		Size: size,
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return newValidationError("body: JSON mal formado")
	}
	if err := validateProductRequest(in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return newValidationError("body: JSON mal formado")
	}
	if err := validateProductRequest(in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AdjustQuantity godoc
// @Summary      Ajustar cantidad en stock (delta con signo)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.AdjustQuantityRequest  true  "Delta a aplicar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust-quantity [patch]
func (h *ProductHandler) AdjustQuantity(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return newValidationError("body: JSON mal formado")
	}
	if err := validateAdjustRequest(in); err != nil {
		return err
	}
	out, err := h.uc.AdjustQuantity(c.Context(), id, *in.Delta)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Param        id  path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, newValidationError("id: debe ser numérico")
	}
	return int64(id), nil
}
