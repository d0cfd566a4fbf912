package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

const consumptionColumns = `id, room_id, COALESCE(guest_id::text, ''), product_id, quantity, total, notes, created_at, updated_at`

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL (usable con pool o tx).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

func (r *ConsumptionRepo) Create(ctx context.Context, c *entity.Consumption) error {
	query := `
		INSERT INTO consumptions (id, room_id, guest_id, product_id, quantity, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RoomID, nullIfEmpty(c.GuestID), c.ProductID, c.Quantity, c.Total, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert consumption", err)
	}
	return nil
}

func (r *ConsumptionRepo) GetByID(ctx context.Context, id string) (*entity.Consumption, error) {
	return r.getOne(ctx, `SELECT `+consumptionColumns+` FROM consumptions WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *ConsumptionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Consumption, error) {
	return r.getOne(ctx, `SELECT `+consumptionColumns+` FROM consumptions WHERE id = $1 FOR UPDATE`, id)
}

func (r *ConsumptionRepo) getOne(ctx context.Context, query string, arg any) (*entity.Consumption, error) {
	c, err := scanConsumption(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption: %w", err)
	}
	return c, nil
}

// List ordena del más reciente al más antiguo; limit <= 0 devuelve todos.
func (r *ConsumptionRepo) List(ctx context.Context, filter repository.ConsumptionFilter, limit, offset int) ([]*entity.Consumption, error) {
	where, args := consumptionWhere(filter)
	query := `SELECT ` + consumptionColumns + ` FROM consumptions` + where +
		` ORDER BY created_at DESC, id DESC` + limitClause(limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consumption
	for rows.Next() {
		c, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ConsumptionRepo) Count(ctx context.Context, filter repository.ConsumptionFilter) (int, error) {
	where, args := consumptionWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM consumptions`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count consumptions: %w", err)
	}
	return n, nil
}

// Update no modifica room_id ni created_at.
func (r *ConsumptionRepo) Update(ctx context.Context, c *entity.Consumption) error {
	query := `
		UPDATE consumptions SET guest_id = $2, product_id = $3, quantity = $4, total = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.GuestID), c.ProductID, c.Quantity, c.Total, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("update consumption", err)
	}
	return expectOne(tag)
}

func (r *ConsumptionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM consumptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumption: %w", err)
	}
	return expectOne(tag)
}

func (r *ConsumptionRepo) DetachGuest(ctx context.Context, guestID, roomID string) (int, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE consumptions SET guest_id = NULL, updated_at = now() WHERE guest_id = $1 AND room_id = $2`,
		guestID, roomID)
	if err != nil {
		return 0, wrapWriteErr("detach guest", err)
	}
	return int(tag.RowsAffected()), nil
}

func consumptionWhere(f repository.ConsumptionFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("room_id", f.RoomID)
	add("guest_id", f.GuestID)
	add("product_id", f.ProductID)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanConsumption(row pgx.Row) (*entity.Consumption, error) {
	var c entity.Consumption
	err := row.Scan(
		&c.ID, &c.RoomID, &c.GuestID, &c.ProductID, &c.Quantity, &c.Total, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
