package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s  *Store
	tx *tables
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.s.with(r.tx, func(t *tables) error {
		if err := checkCategoryName(t, c); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		t.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.with(r.tx, func(t *tables) error {
		if c, ok := t.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	key := fold(name)
	err := r.s.with(r.tx, func(t *tables) error {
		for _, c := range t.categories {
			if fold(c.Name) == key {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(_ context.Context, onlyActive bool) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.with(r.tx, func(t *tables) error {
		out = make([]*entity.Category, 0, len(t.categories))
		for _, c := range t.categories {
			if onlyActive && !c.Active {
				continue
			}
			c := c
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkCategoryName(t, c); err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		t.categories[c.ID] = *c
		return nil
	})
}

// Delete elimina la categoría; los productos quedan sin categoría (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.categories[id]; !ok {
			return domain.ErrNotFound
		}
		for pid, p := range t.products {
			if p.CategoryID == id {
				p.CategoryID = ""
				t.products[pid] = p
			}
		}
		delete(t.categories, id)
		return nil
	})
}

func checkCategoryName(t *tables, c *entity.Category) error {
	key := fold(c.Name)
	for _, other := range t.categories {
		if other.ID != c.ID && fold(other.Name) == key {
			return fmt.Errorf("nombre %s: %w", c.Name, domain.ErrDuplicate)
		}
	}
	return nil
}
