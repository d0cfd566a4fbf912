// Package consumption implementa el libro de consumos: cada alta, edición o baja
// de un consumo mueve el stock del producto dentro de la misma transacción.
package consumption

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/inventory"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
	"github.com/jhoicas/gestion-hotel/pkg/metrics"
)

// Operaciones del libro (etiqueta de métricas).
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// LedgerUseCase registra, edita y elimina consumos manteniendo el stock:
// stock inicial = stock actual + suma de cantidades de los consumos vigentes.
type LedgerUseCase struct {
	txRunner ports.TxRunner
	repos    ports.Repos
	log      zerolog.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso. repos se usa solo para lecturas fuera de transacción.
func NewLedgerUseCase(txRunner ports.TxRunner, repos ports.Repos, log zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log.With().Str("component", "consumption_ledger").Logger(),
		now:      time.Now,
	}
}

// Create registra un consumo: bloquea la habitación, valida el huésped, bloquea el producto,
// verifica stock, calcula el total, persiste el consumo y descuenta el stock.
func (uc *LedgerUseCase) Create(ctx context.Context, in dto.CreateConsumptionRequest) (out *dto.ConsumptionResponse, err error) {
	defer func() { uc.observe(OpCreate, err) }()

	in.RoomID = strings.TrimSpace(in.RoomID)
	in.GuestID = strings.TrimSpace(in.GuestID)
	in.ProductID = strings.TrimSpace(in.ProductID)
	if in.RoomID == "" {
		return nil, domain.NewValidationError("room_id", "la habitación es obligatoria")
	}
	if in.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "el producto es obligatorio")
	}
	if in.Quantity < 1 {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser mayor o igual a 1")
	}

	now := uc.now()
	var (
		created *entity.Consumption
		left    int
	)
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// orden de bloqueo: habitación → consumo → producto, igual que la baja de habitación
		room, err := r.Rooms.GetByIDForUpdate(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.NewValidationError("room_id", "la habitación no existe")
		}
		if in.GuestID != "" {
			if err := checkGuestInRoom(ctx, r.Guests, in.GuestID, room.ID); err != nil {
				return err
			}
		}

		// SELECT FOR UPDATE sobre el producto
		product, err := r.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewValidationError("product_id", "el producto no existe")
		}
		left, err = inventory.Reserve(product.Stock, in.Quantity)
		if err != nil {
			return domain.NewValidationErrorOf(domain.ErrInsufficientStock, "quantity", "stock insuficiente")
		}

		created = &entity.Consumption{
			ID:        uuid.New().String(),
			RoomID:    room.ID,
			GuestID:   in.GuestID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Total:     inventory.LineTotal(in.Quantity, product.UnitPrice),
			Notes:     strings.TrimSpace(in.Notes),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Consumptions.Create(ctx, created); err != nil {
			return err
		}
		return r.Products.UpdateStock(ctx, product.ID, left)
	})
	if err != nil {
		return nil, err
	}

	metrics.SetStock(created.ProductID, left)
	uc.log.Info().
		Str("consumption_id", created.ID).
		Str("room_id", created.RoomID).
		Str("product_id", created.ProductID).
		Int("quantity", created.Quantity).
		Int("stock", left).
		Msg("consumo registrado")
	resp := dto.ConsumptionFromEntity(created)
	return &resp, nil
}

// Update edita un consumo. Devuelve primero la cantidad original al producto original,
// bloquea el producto destino si cambió, verifica el stock y aplica el nuevo descuento.
// La habitación no se puede cambiar.
func (uc *LedgerUseCase) Update(ctx context.Context, id string, in dto.UpdateConsumptionRequest) (out *dto.ConsumptionResponse, err error) {
	defer func() { uc.observe(OpUpdate, err) }()

	if in.Quantity != nil && *in.Quantity < 1 {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser mayor o igual a 1")
	}
	if in.ProductID != nil && strings.TrimSpace(*in.ProductID) == "" {
		return nil, domain.NewValidationError("product_id", "el producto es obligatorio")
	}

	var (
		updated *entity.Consumption
		stocks  = map[string]int{}
	)
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		c, err := lockConsumption(ctx, r, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}

		targetID := c.ProductID
		if in.ProductID != nil {
			targetID = strings.TrimSpace(*in.ProductID)
		}
		quantity := c.Quantity
		if in.Quantity != nil {
			quantity = *in.Quantity
		}

		original, target, err := lockProducts(ctx, r.Products, c.ProductID, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.NewValidationError("product_id", "el producto no existe")
		}
		if original == nil {
			return fmt.Errorf("consumo %s: producto original %s no existe: %w", c.ID, c.ProductID, domain.ErrNotFound)
		}

		original.Stock = inventory.Release(original.Stock, c.Quantity)
		left, err := inventory.Reserve(target.Stock, quantity)
		if err != nil {
			return domain.NewValidationErrorOf(domain.ErrInsufficientStock, "quantity", "stock insuficiente para el producto")
		}
		target.Stock = left

		if in.GuestID != nil {
			guestID := strings.TrimSpace(*in.GuestID)
			if guestID != "" {
				if err := checkGuestInRoom(ctx, r.Guests, guestID, c.RoomID); err != nil {
					return err
				}
			}
			c.GuestID = guestID
		}
		if in.Notes != nil {
			c.Notes = strings.TrimSpace(*in.Notes)
		}
		c.ProductID = target.ID
		c.Quantity = quantity
		c.Total = inventory.LineTotal(quantity, target.UnitPrice)
		c.UpdatedAt = uc.now()

		if original.ID != target.ID {
			if err := r.Products.UpdateStock(ctx, original.ID, original.Stock); err != nil {
				return err
			}
			stocks[original.ID] = original.Stock
		}
		if err := r.Products.UpdateStock(ctx, target.ID, target.Stock); err != nil {
			return err
		}
		stocks[target.ID] = target.Stock
		if err := r.Consumptions.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	for productID, stock := range stocks {
		metrics.SetStock(productID, stock)
	}
	uc.log.Info().
		Str("consumption_id", updated.ID).
		Str("product_id", updated.ProductID).
		Int("quantity", updated.Quantity).
		Msg("consumo actualizado")
	resp := dto.ConsumptionFromEntity(updated)
	return &resp, nil
}

// Delete elimina un consumo devolviendo su cantidad al stock del producto.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) (err error) {
	defer func() { uc.observe(OpDelete, err) }()

	var (
		productID string
		stock     = -1
	)
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		c, err := lockConsumption(ctx, r, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetByIDForUpdate(ctx, c.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			productID = product.ID
			stock = inventory.Release(product.Stock, c.Quantity)
			if err := r.Products.UpdateStock(ctx, product.ID, stock); err != nil {
				return err
			}
		}
		return r.Consumptions.Delete(ctx, c.ID)
	})
	if err != nil {
		return err
	}

	if stock >= 0 {
		metrics.SetStock(productID, stock)
	}
	uc.log.Info().Str("consumption_id", id).Str("product_id", productID).Int("stock", stock).Msg("consumo eliminado")
	return nil
}

// GetByID obtiene un consumo.
func (uc *LedgerUseCase) GetByID(ctx context.Context, id string) (*dto.ConsumptionResponse, error) {
	c, err := uc.repos.Consumptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ConsumptionFromEntity(c)
	return &resp, nil
}

// List lista consumos (más recientes primero) con filtros opcionales.
func (uc *LedgerUseCase) List(ctx context.Context, f dto.ConsumptionFilter, page dto.PageRequest) (*dto.ConsumptionListResponse, error) {
	page.DefaultPage()
	filter := repository.ConsumptionFilter{RoomID: f.RoomID, GuestID: f.GuestID, ProductID: f.ProductID}
	list, err := uc.repos.Consumptions.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repos.Consumptions.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConsumptionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ConsumptionFromEntity(c))
	}
	return &dto.ConsumptionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// SelectableRooms devuelve las habitaciones con algún huésped cuya fecha de salida es hoy
// o posterior, ordenadas por número. Son las únicas a las que se cargan consumos.
func (uc *LedgerUseCase) SelectableRooms(ctx context.Context) ([]dto.RoomOption, error) {
	// las fechas de salida se guardan como medianoche UTC del día
	y, m, d := uc.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ids, err := uc.repos.Guests.RoomIDsWithStayUntil(ctx, today)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomOption, 0, len(ids))
	for _, id := range ids {
		room, err := uc.repos.Rooms.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if room == nil {
			continue
		}
		out = append(out, dto.RoomOption{ID: room.ID, Number: room.Number})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (uc *LedgerUseCase) observe(op string, err error) {
	rejected := errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound)
	metrics.ObserveLedger(op, err, rejected)
	if err != nil && rejected {
		uc.log.Warn().Str("op", op).Err(err).Msg("operación de consumo rechazada")
	}
}

// checkGuestInRoom exige que el huésped exista y pertenezca a la habitación.
func checkGuestInRoom(ctx context.Context, guests repository.GuestRepository, guestID, roomID string) error {
	guest, err := guests.GetByID(ctx, guestID)
	if err != nil {
		return err
	}
	if guest == nil {
		return domain.NewValidationError("guest_id", "el huésped no existe")
	}
	if guest.RoomID != roomID {
		return domain.NewValidationErrorOf(domain.ErrGuestRoomMismatch, "guest_id", "el huésped no pertenece a la habitación seleccionada")
	}
	return nil
}

// lockConsumption bloquea la habitación del consumo y luego el consumo.
// Devuelve nil si el consumo no existe o su habitación se eliminó mientras tanto.
func lockConsumption(ctx context.Context, r ports.Repos, id string) (*entity.Consumption, error) {
	c, err := r.Consumptions.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	room, err := r.Rooms.GetByIDForUpdate(ctx, c.RoomID)
	if err != nil || room == nil {
		return nil, err
	}
	return r.Consumptions.GetByIDForUpdate(ctx, id)
}

// lockProducts bloquea los productos a y b en orden de ID para evitar interbloqueos.
// Si son el mismo, ambos resultados apuntan a la misma entidad.
func lockProducts(ctx context.Context, repo repository.ProductRepository, a, b string) (pa, pb *entity.Product, err error) {
	if a == b {
		p, err := repo.GetByIDForUpdate(ctx, a)
		return p, p, err
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	p1, err := repo.GetByIDForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	p2, err := repo.GetByIDForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if first == a {
		return p1, p2, nil
	}
	return p2, p1, nil
}
