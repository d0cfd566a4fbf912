package ports

import (
	"context"

	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Rooms        repository.RoomRepository
	Guests       repository.GuestRepository
	Products     repository.ProductRepository
	Categories   repository.CategoryRepository
	Consumptions repository.ConsumptionRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD. Si fn devuelve error
// se hace rollback y ningún cambio queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
