package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cronox/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
}

// Router registra las rutas de la API.
// UpsertBySKU queda como operación interna del caso de uso, sin ruta propia.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/adjust-quantity", productHandler.AdjustQuantity)
	products.Delete("/:id", productHandler.Delete)
}
