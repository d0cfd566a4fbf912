package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s  *Store
	tx *tables
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.with(r.tx, func(t *tables) error {
		if err := checkProductName(t, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		t.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.with(r.tx, func(t *tables) error {
		if p, ok := t.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.with(r.tx, func(t *tables) error {
		for _, p := range t.products {
			if p.Name == name {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.with(r.tx, func(t *tables) error {
		all := make([]*entity.Product, 0, len(t.products))
		for _, p := range t.products {
			if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
				continue
			}
			if filter.OnlyAvailable && !p.Available {
				continue
			}
			p := p
			all = append(all, &p)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

// Update persiste todo salvo Stock.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.with(r.tx, func(t *tables) error {
		current, ok := t.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkProductName(t, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		next := *p
		next.Stock = current.Stock
		t.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	return r.s.with(r.tx, func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if stock < 0 {
			return fmt.Errorf("update stock %s: stock negativo %d: %w", id, stock, domain.ErrInvalidInput)
		}
		p.Stock = stock
		t.products[id] = p
		return nil
	})
}

// Delete elimina el producto y sus consumos (ON DELETE CASCADE).
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.products[id]; !ok {
			return domain.ErrNotFound
		}
		for cid, c := range t.consumptions {
			if c.ProductID == id {
				delete(t.consumptions, cid)
				delete(t.seq, cid)
			}
		}
		delete(t.products, id)
		return nil
	})
}

func checkProductName(t *tables, p *entity.Product) error {
	for _, other := range t.products {
		if other.ID != p.ID && other.Name == p.Name {
			return fmt.Errorf("nombre %s: %w", p.Name, domain.ErrDuplicate)
		}
	}
	return nil
}
