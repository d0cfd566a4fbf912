package repository

import (
	"context"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
)

// RoomFilter restringe el listado de habitaciones.
type RoomFilter struct {
	Status string
	Type   string
}

// RoomRepository define el puerto de persistencia para Room (DIP).
// GetByID y GetByNumber devuelven (nil, nil) si no existe.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Room, error)
	GetByNumber(ctx context.Context, number string) (*entity.Room, error)
	List(ctx context.Context, filter RoomFilter, limit, offset int) ([]*entity.Room, error)
	Count(ctx context.Context, filter RoomFilter) (int, error)
	// CountByStatus devuelve el número de habitaciones por estado.
	CountByStatus(ctx context.Context) (map[string]int, error)
	Update(ctx context.Context, room *entity.Room) error
	UpdateStatus(ctx context.Context, id, status string) error
	// Delete elimina la habitación junto con sus huéspedes y consumos.
	Delete(ctx context.Context, id string) error
}
