package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.GuestRepository = (*GuestRepo)(nil)

const guestColumns = `id, name, surname, document_type, document_number, email, phone, vehicle, plate,
	room_id, check_in, check_out, created_at, updated_at`

// GuestRepo implementación de GuestRepository sobre PostgreSQL (usable con pool o tx).
type GuestRepo struct {
	q Querier
}

// NewGuestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGuestRepository(q Querier) *GuestRepo {
	return &GuestRepo{q: q}
}

func (r *GuestRepo) Create(ctx context.Context, g *entity.Guest) error {
	query := `
		INSERT INTO guests (` + guestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		g.ID, g.Name, g.Surname, g.DocumentType, g.DocumentNumber, g.Email, g.Phone, g.Vehicle, g.Plate,
		g.RoomID, g.CheckIn, g.CheckOut, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert guest", err)
	}
	return nil
}

func (r *GuestRepo) GetByID(ctx context.Context, id string) (*entity.Guest, error) {
	return r.getOne(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = $1`, id)
}

func (r *GuestRepo) GetByEmail(ctx context.Context, email string) (*entity.Guest, error) {
	return r.getOne(ctx, `SELECT `+guestColumns+` FROM guests WHERE email = $1`, email)
}

func (r *GuestRepo) GetByDocument(ctx context.Context, documentNumber string) (*entity.Guest, error) {
	return r.getOne(ctx, `SELECT `+guestColumns+` FROM guests WHERE document_number = $1`, documentNumber)
}

func (r *GuestRepo) getOne(ctx context.Context, query string, arg any) (*entity.Guest, error) {
	g, err := scanGuest(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return g, nil
}

func (r *GuestRepo) List(ctx context.Context, limit, offset int) ([]*entity.Guest, error) {
	return r.list(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY check_in, id`+limitClause(limit, offset))
}

func (r *GuestRepo) ListByRoom(ctx context.Context, roomID string) ([]*entity.Guest, error) {
	return r.list(ctx, `SELECT `+guestColumns+` FROM guests WHERE room_id = $1 ORDER BY check_in, id`, roomID)
}

func (r *GuestRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Guest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()
	var list []*entity.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *GuestRepo) CountByRoom(ctx context.Context, roomID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM guests WHERE room_id = $1`, roomID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count guests: %w", err)
	}
	return n, nil
}

func (r *GuestRepo) CountGroupedByRoom(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT room_id, COUNT(*) FROM guests GROUP BY room_id`)
	if err != nil {
		return nil, fmt.Errorf("count guests by room: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var roomID string
		var n int
		if err := rows.Scan(&roomID, &n); err != nil {
			return nil, fmt.Errorf("scan guest count: %w", err)
		}
		out[roomID] = n
	}
	return out, rows.Err()
}

func (r *GuestRepo) RoomIDsWithStayUntil(ctx context.Context, at time.Time) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT room_id FROM guests WHERE check_out >= $1 ORDER BY room_id`, at)
	if err != nil {
		return nil, fmt.Errorf("rooms with stay: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan room id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *GuestRepo) Update(ctx context.Context, g *entity.Guest) error {
	query := `
		UPDATE guests SET name = $2, surname = $3, document_type = $4, document_number = $5, email = $6,
			phone = $7, vehicle = $8, plate = $9, room_id = $10, check_in = $11, check_out = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		g.ID, g.Name, g.Surname, g.DocumentType, g.DocumentNumber, g.Email,
		g.Phone, g.Vehicle, g.Plate, g.RoomID, g.CheckIn, g.CheckOut, g.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("update guest", err)
	}
	return expectOne(tag)
}

// Delete elimina el huésped; consumptions.guest_id queda en NULL (ON DELETE SET NULL).
func (r *GuestRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return expectOne(tag)
}

func scanGuest(row pgx.Row) (*entity.Guest, error) {
	var g entity.Guest
	err := row.Scan(
		&g.ID, &g.Name, &g.Surname, &g.DocumentType, &g.DocumentNumber, &g.Email, &g.Phone, &g.Vehicle, &g.Plate,
		&g.RoomID, &g.CheckIn, &g.CheckOut, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
