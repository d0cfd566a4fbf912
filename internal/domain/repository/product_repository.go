package repository

import (
	"context"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
)

// ProductFilter restringe el listado de productos.
type ProductFilter struct {
	CategoryID    string
	OnlyAvailable bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	// Update persiste los datos descriptivos; nunca el stock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock es de uso exclusivo del libro de consumos.
	UpdateStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error
}
