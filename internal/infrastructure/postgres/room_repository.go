package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

const roomColumns = `id, number, type, status, capacity, price, description, image_ref, created_at, updated_at`

// RoomRepo implementación de RoomRepository sobre PostgreSQL (usable con pool o tx).
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		room.ID, room.Number, room.Type, room.Status, room.Capacity, room.Price,
		room.Description, room.ImageRef, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert room", err)
	}
	return nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	return r.getOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la habitación y bloquea la fila (SELECT FOR UPDATE).
func (r *RoomRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Room, error) {
	return r.getOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
}

func (r *RoomRepo) GetByNumber(ctx context.Context, number string) (*entity.Room, error) {
	return r.getOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE number = $1`, number)
}

func (r *RoomRepo) getOne(ctx context.Context, query string, arg any) (*entity.Room, error) {
	room, err := scanRoom(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func (r *RoomRepo) List(ctx context.Context, filter repository.RoomFilter, limit, offset int) ([]*entity.Room, error) {
	where, args := roomWhere(filter)
	query := `SELECT ` + roomColumns + ` FROM rooms` + where + ` ORDER BY number` + limitClause(limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, room)
	}
	return list, rows.Err()
}

func (r *RoomRepo) Count(ctx context.Context, filter repository.RoomFilter) (int, error) {
	where, args := roomWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return n, nil
}

func (r *RoomRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM rooms GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count rooms by status: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan room status: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *RoomRepo) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms SET number = $2, type = $3, status = $4, capacity = $5, price = $6,
			description = $7, image_ref = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		room.ID, room.Number, room.Type, room.Status, room.Capacity, room.Price,
		room.Description, room.ImageRef, room.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("update room", err)
	}
	return expectOne(tag)
}

func (r *RoomRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE rooms SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	return expectOne(tag)
}

// Delete elimina la habitación; huéspedes y consumos caen por ON DELETE CASCADE.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return expectOne(tag)
}

func roomWhere(f repository.RoomFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID, &room.Number, &room.Type, &room.Status, &room.Capacity, &room.Price,
		&room.Description, &room.ImageRef, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
