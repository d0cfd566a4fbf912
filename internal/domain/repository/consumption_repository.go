package repository

import (
	"context"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
)

// ConsumptionFilter restringe el listado de consumos. Campos vacíos no filtran.
type ConsumptionFilter struct {
	RoomID    string
	GuestID   string
	ProductID string
}

// ConsumptionRepository define el puerto de persistencia para Consumption (DIP).
// Los listados se ordenan por fecha de creación descendente; limit <= 0 devuelve todo.
type ConsumptionRepository interface {
	Create(ctx context.Context, c *entity.Consumption) error
	GetByID(ctx context.Context, id string) (*entity.Consumption, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Consumption, error)
	List(ctx context.Context, filter ConsumptionFilter, limit, offset int) ([]*entity.Consumption, error)
	Count(ctx context.Context, filter ConsumptionFilter) (int, error)
	Update(ctx context.Context, c *entity.Consumption) error
	Delete(ctx context.Context, id string) error
	// DetachGuest quita el huésped de sus consumos en roomID y devuelve cuántos cambió.
	DetachGuest(ctx context.Context, guestID, roomID string) (int, error)
}
