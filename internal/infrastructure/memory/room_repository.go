package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo implementación en memoria de RoomRepository.
type RoomRepo struct {
	s  *Store
	tx *tables
}

func (r *RoomRepo) Create(_ context.Context, room *entity.Room) error {
	return r.s.with(r.tx, func(t *tables) error {
		for _, other := range t.rooms {
			if other.Number == room.Number {
				return fmt.Errorf("create room: número %s: %w", room.Number, domain.ErrDuplicate)
			}
		}
		t.rooms[room.ID] = *room
		return nil
	})
}

func (r *RoomRepo) GetByID(_ context.Context, id string) (*entity.Room, error) {
	var out *entity.Room
	err := r.s.with(r.tx, func(t *tables) error {
		if room, ok := t.rooms[id]; ok {
			out = &room
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate: la transacción en memoria ya es exclusiva.
func (r *RoomRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Room, error) {
	return r.GetByID(ctx, id)
}

func (r *RoomRepo) GetByNumber(_ context.Context, number string) (*entity.Room, error) {
	var out *entity.Room
	err := r.s.with(r.tx, func(t *tables) error {
		for _, room := range t.rooms {
			if room.Number == number {
				room := room
				out = &room
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *RoomRepo) List(_ context.Context, filter repository.RoomFilter, limit, offset int) ([]*entity.Room, error) {
	var out []*entity.Room
	err := r.s.with(r.tx, func(t *tables) error {
		all := filterRooms(t, filter)
		sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *RoomRepo) Count(_ context.Context, filter repository.RoomFilter) (int, error) {
	n := 0
	err := r.s.with(r.tx, func(t *tables) error {
		n = len(filterRooms(t, filter))
		return nil
	})
	return n, err
}

func (r *RoomRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	err := r.s.with(r.tx, func(t *tables) error {
		for _, room := range t.rooms {
			out[room.Status]++
		}
		return nil
	})
	return out, err
}

func (r *RoomRepo) Update(_ context.Context, room *entity.Room) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.rooms[room.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range t.rooms {
			if other.ID != room.ID && other.Number == room.Number {
				return fmt.Errorf("update room: número %s: %w", room.Number, domain.ErrDuplicate)
			}
		}
		t.rooms[room.ID] = *room
		return nil
	})
}

func (r *RoomRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.s.with(r.tx, func(t *tables) error {
		room, ok := t.rooms[id]
		if !ok {
			return domain.ErrNotFound
		}
		room.Status = status
		t.rooms[id] = room
		return nil
	})
}

// Delete elimina la habitación con sus huéspedes y consumos (ON DELETE CASCADE).
func (r *RoomRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(t *tables) error {
		if _, ok := t.rooms[id]; !ok {
			return domain.ErrNotFound
		}
		for gid, g := range t.guests {
			if g.RoomID == id {
				delete(t.guests, gid)
			}
		}
		for cid, c := range t.consumptions {
			if c.RoomID == id {
				delete(t.consumptions, cid)
				delete(t.seq, cid)
			}
		}
		delete(t.rooms, id)
		return nil
	})
}

func filterRooms(t *tables, f repository.RoomFilter) []*entity.Room {
	out := make([]*entity.Room, 0, len(t.rooms))
	for _, room := range t.rooms {
		if f.Status != "" && room.Status != f.Status {
			continue
		}
		if f.Type != "" && room.Type != f.Type {
			continue
		}
		room := room
		out = append(out, &room)
	}
	return out
}
