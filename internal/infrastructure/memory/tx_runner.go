package memory

import (
	"context"
	"sync"

	"github.com/cronox/catalogo-api/internal/application/usecase"
	"github.com/cronox/catalogo-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las "transacciones" sobre el repositorio en memoria con un
// mutex: el callback completo corre en exclusión mutua, el equivalente grueso del
// SELECT FOR UPDATE de postgres. No hay rollback: el repositorio en memoria solo
// escribe al final de cada operación, así que un error deja el estado como estaba.
type TxRunner struct {
	mu   sync.Mutex
	repo *ProductRepo
}

// NewTxRunner construye el runner sobre el repositorio dado.
func NewTxRunner(repo *ProductRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

// Run ejecuta fn con el repositorio, en exclusión mutua frente a otras transacciones.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.repo)
}
