package usecase

import (
	"context"

	"github.com/cronox/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio atado a esa tx. Commit si fn devuelve nil, Rollback si no.
// Garantiza atomicidad para los casos de uso read-modify-write.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error
}
