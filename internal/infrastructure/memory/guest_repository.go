package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.GuestRepository = (*GuestRepo)(nil)

// GuestRepo implementación en memoria de GuestRepository.
type GuestRepo struct {
	s  *Store
	tx *tables
}

func (r *GuestRepo) Create(_ context.Context, g *entity.Guest) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.rooms[g.RoomID]; !ok {
			return fmt.Errorf("create guest: habitación %s: %w", g.RoomID, domain.ErrNotFound)
		}
		if err := checkGuestUnique(t, g); err != nil {
			return fmt.Errorf("create guest: %w", err)
		}
		t.guests[g.ID] = *g
		return nil
	})
}

func (r *GuestRepo) GetByID(_ context.Context, id string) (*entity.Guest, error) {
	var out *entity.Guest
	err := r.s.with(r.tx, func(t *tables) error {
		if g, ok := t.guests[id]; ok {
			out = &g
		}
		return nil
	})
	return out, err
}

func (r *GuestRepo) GetByEmail(_ context.Context, email string) (*entity.Guest, error) {
	return r.findOne(func(g entity.Guest) bool { return g.Email == email })
}

func (r *GuestRepo) GetByDocument(_ context.Context, documentNumber string) (*entity.Guest, error) {
	return r.findOne(func(g entity.Guest) bool { return g.DocumentNumber == documentNumber })
}

func (r *GuestRepo) findOne(match func(entity.Guest) bool) (*entity.Guest, error) {
	var out *entity.Guest
	err := r.s.with(r.tx, func(t *tables) error {
		for _, g := range t.guests {
			if match(g) {
				g := g
				out = &g
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *GuestRepo) List(_ context.Context, limit, offset int) ([]*entity.Guest, error) {
	var out []*entity.Guest
	err := r.s.with(r.tx, func(t *tables) error {
		out = page(sortedGuests(t, ""), limit, offset)
		return nil
	})
	return out, err
}

func (r *GuestRepo) ListByRoom(_ context.Context, roomID string) ([]*entity.Guest, error) {
	var out []*entity.Guest
	err := r.s.with(r.tx, func(t *tables) error {
		out = sortedGuests(t, roomID)
		return nil
	})
	return out, err
}

func (r *GuestRepo) CountByRoom(_ context.Context, roomID string) (int, error) {
	n := 0
	err := r.s.with(r.tx, func(t *tables) error {
		for _, g := range t.guests {
			if g.RoomID == roomID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *GuestRepo) CountGroupedByRoom(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	err := r.s.with(r.tx, func(t *tables) error {
		for _, g := range t.guests {
			out[g.RoomID]++
		}
		return nil
	})
	return out, err
}

func (r *GuestRepo) RoomIDsWithStayUntil(_ context.Context, at time.Time) ([]string, error) {
	var out []string
	err := r.s.with(r.tx, func(t *tables) error {
		seen := map[string]bool{}
		for _, g := range t.guests {
			if !g.CheckOut.Before(at) && !seen[g.RoomID] {
				seen[g.RoomID] = true
				out = append(out, g.RoomID)
			}
		}
		sort.Strings(out)
		return nil
	})
	return out, err
}

func (r *GuestRepo) Update(_ context.Context, g *entity.Guest) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.guests[g.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := t.rooms[g.RoomID]; !ok {
			return fmt.Errorf("update guest: habitación %s: %w", g.RoomID, domain.ErrNotFound)
		}
		if err := checkGuestUnique(t, g); err != nil {
			return fmt.Errorf("update guest: %w", err)
		}
		t.guests[g.ID] = *g
		return nil
	})
}

// Delete elimina el huésped; sus consumos quedan sin huésped (ON DELETE SET NULL).
func (r *GuestRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.guests[id]; !ok {
			return domain.ErrNotFound
		}
		for cid, c := range t.consumptions {
			if c.GuestID == id {
				c.GuestID = ""
				t.consumptions[cid] = c
			}
		}
		delete(t.guests, id)
		return nil
	})
}

func checkGuestUnique(t *tables, g *entity.Guest) error {
	for _, other := range t.guests {
		if other.ID == g.ID {
			continue
		}
		if other.Email == g.Email {
			return fmt.Errorf("correo %s: %w", g.Email, domain.ErrDuplicate)
		}
		if other.DocumentNumber == g.DocumentNumber {
			return fmt.Errorf("documento %s: %w", g.DocumentNumber, domain.ErrDuplicate)
		}
	}
	return nil
}

// sortedGuests devuelve los huéspedes (de una habitación si roomID no es vacío) por fecha de entrada.
func sortedGuests(t *tables, roomID string) []*entity.Guest {
	out := make([]*entity.Guest, 0)
	for _, g := range t.guests {
		if roomID != "" && g.RoomID != roomID {
			continue
		}
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.Before(out[j].CheckIn)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
