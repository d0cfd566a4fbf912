package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
)

// GuestRepository define el puerto de persistencia para Guest (DIP).
type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	GetByID(ctx context.Context, id string) (*entity.Guest, error)
	GetByEmail(ctx context.Context, email string) (*entity.Guest, error)
	GetByDocument(ctx context.Context, documentNumber string) (*entity.Guest, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Guest, error)
	ListByRoom(ctx context.Context, roomID string) ([]*entity.Guest, error)
	CountByRoom(ctx context.Context, roomID string) (int, error)
	// CountGroupedByRoom devuelve huéspedes por habitación (solo habitaciones con al menos uno).
	CountGroupedByRoom(ctx context.Context) (map[string]int, error)
	// RoomIDsWithStayUntil devuelve las habitaciones con algún huésped cuya salida es >= at.
	RoomIDsWithStayUntil(ctx context.Context, at time.Time) ([]string, error)
	Update(ctx context.Context, guest *entity.Guest) error
	// Delete elimina el huésped; sus consumos quedan sin huésped.
	Delete(ctx context.Context, id string) error
}
