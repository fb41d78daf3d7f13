package inventory

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda nada persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
