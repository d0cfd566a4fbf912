package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación en memoria de ConsumptionRepository.
type ConsumptionRepo struct {
	s  *Store
	tx *tables
}

func (r *ConsumptionRepo) Create(_ context.Context, c *entity.Consumption) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.rooms[c.RoomID]; !ok {
			return fmt.Errorf("create consumption: habitación %s: %w", c.RoomID, domain.ErrNotFound)
		}
		if _, ok := t.products[c.ProductID]; !ok {
			return fmt.Errorf("create consumption: producto %s: %w", c.ProductID, domain.ErrNotFound)
		}
		t.next++
		t.seq[c.ID] = t.next
		t.consumptions[c.ID] = *c
		return nil
	})
}

func (r *ConsumptionRepo) GetByID(_ context.Context, id string) (*entity.Consumption, error) {
	var out *entity.Consumption
	err := r.s.with(r.tx, func(t *tables) error {
		if c, ok := t.consumptions[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ConsumptionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Consumption, error) {
	return r.GetByID(ctx, id)
}

func (r *ConsumptionRepo) List(_ context.Context, filter repository.ConsumptionFilter, limit, offset int) ([]*entity.Consumption, error) {
	var out []*entity.Consumption
	err := r.s.with(r.tx, func(t *tables) error {
		all := filterConsumptions(t, filter)
		// más recientes primero
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return t.seq[all[i].ID] > t.seq[all[j].ID]
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *ConsumptionRepo) Count(_ context.Context, filter repository.ConsumptionFilter) (int, error) {
	n := 0
	err := r.s.with(r.tx, func(t *tables) error {
		n = len(filterConsumptions(t, filter))
		return nil
	})
	return n, err
}

func (r *ConsumptionRepo) Update(_ context.Context, c *entity.Consumption) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.consumptions[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := t.products[c.ProductID]; !ok {
			return fmt.Errorf("update consumption: producto %s: %w", c.ProductID, domain.ErrNotFound)
		}
		t.consumptions[c.ID] = *c
		return nil
	})
}

func (r *ConsumptionRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.consumptions[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.consumptions, id)
		delete(t.seq, id)
		return nil
	})
}

func (r *ConsumptionRepo) DetachGuest(_ context.Context, guestID, roomID string) (int, error) {
	n := 0
	err := r.s.with(r.tx, func(t *tables) error {
		for id, c := range t.consumptions {
			if c.GuestID == guestID && c.RoomID == roomID {
				c.GuestID = ""
				t.consumptions[id] = c
				n++
			}
		}
		return nil
	})
	return n, err
}

func filterConsumptions(t *tables, f repository.ConsumptionFilter) []*entity.Consumption {
	out := make([]*entity.Consumption, 0)
	for _, c := range t.consumptions {
		if f.RoomID != "" && c.RoomID != f.RoomID {
			continue
		}
		if f.GuestID != "" && c.GuestID != f.GuestID {
			continue
		}
		if f.ProductID != "" && c.ProductID != f.ProductID {
			continue
		}
		c := c
		out = append(out, &c)
	}
	return out
}
