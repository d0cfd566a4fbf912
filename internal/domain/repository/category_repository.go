package repository

import (
	"context"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByName compara sin distinguir mayúsculas.
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete elimina la categoría; los productos quedan sin categoría.
	Delete(ctx context.Context, id string) error
}
