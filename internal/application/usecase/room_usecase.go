package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/hotel"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
	"github.com/jhoicas/gestion-hotel/pkg/metrics"
)

// RoomUseCase casos de uso CRUD para habitaciones.
type RoomUseCase struct {
	txRunner ports.TxRunner
	repos    ports.Repos
	cache    ports.RoomSummaryCache
	log      zerolog.Logger
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(txRunner ports.TxRunner, repos ports.Repos, cache ports.RoomSummaryCache, log zerolog.Logger) *RoomUseCase {
	return &RoomUseCase{
		txRunner: txRunner,
		repos:    repos,
		cache:    cache,
		log:      log.With().Str("component", "rooms").Logger(),
	}
}

// Create crea una habitación. Estado por defecto disponible y capacidad por defecto 1.
func (uc *RoomUseCase) Create(ctx context.Context, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	now := time.Now()
	room := &entity.Room{
		ID:          uuid.New().String(),
		Number:      strings.TrimSpace(in.Number),
		Type:        strings.TrimSpace(in.Type),
		Status:      strings.TrimSpace(in.Status),
		Capacity:    in.Capacity,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		ImageRef:    strings.TrimSpace(in.ImageRef),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if room.Status == "" {
		room.Status = entity.RoomStatusAvailable
	}
	if room.Capacity == 0 {
		room.Capacity = 1
	}
	if err := validateRoom(room); err != nil {
		return nil, err
	}
	existing, err := uc.repos.Rooms.GetByNumber(ctx, room.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateNumber()
	}
	if err := uc.repos.Rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	resp := dto.RoomFromEntity(room, 0)
	return &resp, nil
}

// GetByID obtiene una habitación con su número de huéspedes.
func (uc *RoomUseCase) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := uc.repos.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.repos.Guests.CountByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.RoomFromEntity(room, count)
	return &resp, nil
}

// List lista habitaciones ordenadas por número, con ocupación y resumen por estado.
func (uc *RoomUseCase) List(ctx context.Context, f dto.RoomFilter, page dto.PageRequest) (*dto.RoomListResponse, error) {
	page.DefaultPage()
	filter := repository.RoomFilter{Status: f.Status, Type: f.Type}
	list, err := uc.repos.Rooms.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repos.Rooms.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	counts, err := uc.repos.Guests.CountGroupedByRoom(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := uc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoomResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.RoomFromEntity(r, counts[r.ID]))
	}
	return &dto.RoomListResponse{
		Items:   items,
		Summary: *summary,
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Summary conteo de habitaciones: total, disponibles, ocupadas y en mantenimiento.
func (uc *RoomUseCase) Summary(ctx context.Context) (*dto.RoomSummary, error) {
	if s, ok := uc.cache.Get(ctx); ok {
		return s, nil
	}
	byStatus, err := uc.repos.Rooms.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	s := dto.RoomSummary{
		Available:   byStatus[entity.RoomStatusAvailable],
		Occupied:    byStatus[entity.RoomStatusOccupied],
		Maintenance: byStatus[entity.RoomStatusMaintenance],
	}
	for _, n := range byStatus {
		s.Total += n
	}
	uc.cache.Set(ctx, s)
	return &s, nil
}

// Update aplica un parche explícito. La capacidad no puede quedar por debajo de los huéspedes actuales.
func (uc *RoomUseCase) Update(ctx context.Context, id string, in dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	var (
		out   *entity.Room
		count int
	)
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		room, err := r.Rooms.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrNotFound
		}
		prevCapacity := room.Capacity
		if in.Number != nil {
			room.Number = strings.TrimSpace(*in.Number)
		}
		if in.Type != nil {
			room.Type = strings.TrimSpace(*in.Type)
		}
		if in.Status != nil {
			room.Status = strings.TrimSpace(*in.Status)
		}
		if in.Capacity != nil {
			room.Capacity = *in.Capacity
		}
		if in.Price != nil {
			room.Price = *in.Price
		}
		if in.Description != nil {
			room.Description = strings.TrimSpace(*in.Description)
		}
		if in.ImageRef != nil {
			room.ImageRef = strings.TrimSpace(*in.ImageRef)
		}
		if err := validateRoom(room); err != nil {
			return err
		}
		if in.Number != nil {
			other, err := r.Rooms.GetByNumber(ctx, room.Number)
			if err != nil {
				return err
			}
			if other != nil && other.ID != room.ID {
				return duplicateNumber()
			}
		}
		count, err = r.Guests.CountByRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		if room.Capacity < count {
			return domain.NewValidationError("capacity", "la capacidad no puede ser menor que los huéspedes actuales")
		}
		// un cambio de capacidad solo recalcula el estado derivado de la ocupación;
		// un estado enviado en el mismo parche manda
		if in.Status == nil && room.Capacity != prevCapacity &&
			(room.Status == entity.RoomStatusOccupied || hotel.IsFull(room.Capacity, count)) {
			room.Status = hotel.NextStatus(room.Capacity, count)
		}
		room.UpdatedAt = time.Now()
		out = room
		return r.Rooms.Update(ctx, room)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	resp := dto.RoomFromEntity(out, count)
	return &resp, nil
}

// Delete elimina la habitación con sus huéspedes y consumos. El stock de los
// consumos se devuelve a los productos en la misma transacción.
func (uc *RoomUseCase) Delete(ctx context.Context, id string) error {
	var stocks map[string]int
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		room, err := r.Rooms.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrNotFound
		}
		stocks, err = consumption.ReleaseRoom(ctx, r, room.ID)
		if err != nil {
			return err
		}
		return r.Rooms.Delete(ctx, room.ID)
	})
	if err != nil {
		return err
	}
	for productID, stock := range stocks {
		metrics.SetStock(productID, stock)
	}
	uc.cache.Invalidate(ctx)
	uc.log.Info().Str("room_id", id).Int("products_restored", len(stocks)).Msg("habitación eliminada")
	return nil
}

func validateRoom(r *entity.Room) error {
	if r.Number == "" {
		return domain.NewValidationError("number", "el número de habitación es obligatorio")
	}
	if utf8.RuneCountInString(r.Number) > entity.RoomNumberMaxLen {
		return domain.NewValidationError("number", "el número no puede superar 10 caracteres")
	}
	if !entity.IsValidRoomType(r.Type) {
		return domain.NewValidationError("type", "tipo de habitación no válido")
	}
	if !entity.IsValidRoomStatus(r.Status) {
		return domain.NewValidationError("status", "estado de habitación no válido")
	}
	if r.Capacity < 1 {
		return domain.NewValidationError("capacity", "la capacidad debe ser al menos 1 huésped")
	}
	if r.Price.LessThan(decimal.Zero) {
		return domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	return nil
}

func duplicateNumber() error {
	return domain.NewValidationErrorOf(domain.ErrDuplicate, "number", "ya existe una habitación con este número")
}
