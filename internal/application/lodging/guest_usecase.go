// Package lodging asigna huéspedes a habitaciones respetando la capacidad
// y recalcula el estado de ocupación de cada habitación afectada.
package lodging

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/hotel"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

// GuestUseCase casos de uso de huéspedes. Alta, cambio de habitación y baja
// se ejecutan en una transacción con la habitación bloqueada.
type GuestUseCase struct {
	txRunner ports.TxRunner
	repos    ports.Repos
	cache    ports.RoomSummaryCache
	log      zerolog.Logger
	now      func() time.Time
}

// NewGuestUseCase construye el caso de uso. cache puede ser ports.NopRoomSummaryCache.
func NewGuestUseCase(txRunner ports.TxRunner, repos ports.Repos, cache ports.RoomSummaryCache, log zerolog.Logger) *GuestUseCase {
	return &GuestUseCase{
		txRunner: txRunner,
		repos:    repos,
		cache:    cache,
		log:      log.With().Str("component", "lodging").Logger(),
		now:      time.Now,
	}
}

// Create registra un huésped en una habitación que aún tiene cupo.
func (uc *GuestUseCase) Create(ctx context.Context, in dto.CreateGuestRequest) (*dto.GuestResponse, error) {
	now := uc.now()
	g := &entity.Guest{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Surname:        in.Surname,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		Vehicle:        in.Vehicle,
		Plate:          in.Plate,
		RoomID:         strings.TrimSpace(in.RoomID),
		CheckIn:        now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if strings.TrimSpace(in.CheckIn) != "" {
		d, err := parseDate("check_in", in.CheckIn)
		if err != nil {
			return nil, err
		}
		g.CheckIn = d
	}
	if strings.TrimSpace(in.CheckOut) == "" {
		return nil, domain.NewValidationError("check_out", "la fecha de salida es obligatoria")
	}
	d, err := parseDate("check_out", in.CheckOut)
	if err != nil {
		return nil, err
	}
	g.CheckOut = d
	if err := normalizeGuest(g); err != nil {
		return nil, err
	}

	var roomNumber string
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		room, err := r.Rooms.GetByIDForUpdate(ctx, g.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.NewValidationError("room_id", "la habitación no existe")
		}
		count, err := r.Guests.CountByRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		if hotel.IsFull(room.Capacity, count) {
			return domain.NewValidationErrorOf(domain.ErrRoomFull, "room_id", "la habitación ya alcanzó su capacidad máxima")
		}
		if err := checkUnique(ctx, r.Guests, g); err != nil {
			return err
		}
		if err := r.Guests.Create(ctx, g); err != nil {
			return err
		}
		roomNumber = room.Number
		return syncStatus(ctx, r.Rooms, room, count+1)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	uc.log.Info().Str("guest_id", g.ID).Str("room_id", g.RoomID).Msg("huésped registrado")
	resp := dto.GuestFromEntity(g, roomNumber)
	return &resp, nil
}

// Update aplica un parche al huésped. Si cambia de habitación, la destino debe
// tener cupo y se recalcula el estado de ambas.
func (uc *GuestUseCase) Update(ctx context.Context, id string, in dto.UpdateGuestRequest) (*dto.GuestResponse, error) {
	var (
		out        *entity.Guest
		roomNumber string
		moved      bool
	)
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		g, err := r.Guests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrNotFound
		}
		fromRoomID := g.RoomID
		if err := applyPatch(g, in); err != nil {
			return err
		}
		if err := normalizeGuest(g); err != nil {
			return err
		}
		if err := checkUnique(ctx, r.Guests, g); err != nil {
			return err
		}

		if g.RoomID == fromRoomID {
			room, err := r.Rooms.GetByID(ctx, g.RoomID)
			if err != nil {
				return err
			}
			if room != nil {
				roomNumber = room.Number
			}
			g.UpdatedAt = uc.now()
			out = g
			return r.Guests.Update(ctx, g)
		}

		from, to, err := lockRooms(ctx, r.Rooms, fromRoomID, g.RoomID)
		if err != nil {
			return err
		}
		if to == nil {
			return domain.NewValidationError("room_id", "la habitación no existe")
		}
		toCount, err := r.Guests.CountByRoom(ctx, to.ID)
		if err != nil {
			return err
		}
		if hotel.IsFull(to.Capacity, toCount) {
			return domain.NewValidationErrorOf(domain.ErrRoomFull, "room_id", "la habitación ya alcanzó su capacidad máxima")
		}
		g.UpdatedAt = uc.now()
		if err := r.Guests.Update(ctx, g); err != nil {
			return err
		}
		if err := syncStatus(ctx, r.Rooms, to, toCount+1); err != nil {
			return err
		}
		// los consumos de la habitación anterior quedan sin huésped
		if _, err := r.Consumptions.DetachGuest(ctx, g.ID, fromRoomID); err != nil {
			return err
		}
		if from != nil {
			fromCount, err := r.Guests.CountByRoom(ctx, from.ID)
			if err != nil {
				return err
			}
			if err := syncStatus(ctx, r.Rooms, from, fromCount); err != nil {
				return err
			}
		}
		roomNumber = to.Number
		moved = true
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	if moved {
		uc.cache.Invalidate(ctx)
		uc.log.Info().Str("guest_id", out.ID).Str("room_id", out.RoomID).Msg("huésped cambiado de habitación")
	}
	resp := dto.GuestFromEntity(out, roomNumber)
	return &resp, nil
}

// Delete elimina al huésped (sus consumos quedan sin huésped) y recalcula el estado de la habitación.
func (uc *GuestUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		g, err := r.Guests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrNotFound
		}
		room, err := r.Rooms.GetByIDForUpdate(ctx, g.RoomID)
		if err != nil {
			return err
		}
		if err := r.Guests.Delete(ctx, g.ID); err != nil {
			return err
		}
		if room == nil {
			return nil
		}
		count, err := r.Guests.CountByRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		return syncStatus(ctx, r.Rooms, room, count)
	})
	if err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	uc.log.Info().Str("guest_id", id).Msg("huésped eliminado")
	return nil
}

// GetByID obtiene un huésped con el número de su habitación.
func (uc *GuestUseCase) GetByID(ctx context.Context, id string) (*dto.GuestResponse, error) {
	g, err := uc.repos.Guests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	var number string
	if room, err := uc.repos.Rooms.GetByID(ctx, g.RoomID); err == nil && room != nil {
		number = room.Number
	}
	resp := dto.GuestFromEntity(g, number)
	return &resp, nil
}

// List lista huéspedes con paginación.
func (uc *GuestUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.GuestListResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Guests.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	numbers := map[string]string{}
	items := make([]dto.GuestResponse, 0, len(list))
	for _, g := range list {
		number, ok := numbers[g.RoomID]
		if !ok {
			if room, err := uc.repos.Rooms.GetByID(ctx, g.RoomID); err == nil && room != nil {
				number = room.Number
			}
			numbers[g.RoomID] = number
		}
		items = append(items, dto.GuestFromEntity(g, number))
	}
	return &dto.GuestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListByRoom lista los huéspedes de una habitación.
func (uc *GuestUseCase) ListByRoom(ctx context.Context, roomID string) ([]dto.GuestResponse, error) {
	room, err := uc.repos.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Guests.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GuestResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.GuestFromEntity(g, room.Number))
	}
	return out, nil
}

// syncStatus persiste el estado derivado de la ocupación si cambió.
func syncStatus(ctx context.Context, rooms repository.RoomRepository, room *entity.Room, guests int) error {
	next := hotel.NextStatus(room.Capacity, guests)
	if next == room.Status {
		return nil
	}
	room.Status = next
	return rooms.UpdateStatus(ctx, room.ID, next)
}

// lockRooms bloquea dos habitaciones distintas en orden de ID.
func lockRooms(ctx context.Context, rooms repository.RoomRepository, a, b string) (ra, rb *entity.Room, err error) {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	r1, err := rooms.GetByIDForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	r2, err := rooms.GetByIDForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if first == a {
		return r1, r2, nil
	}
	return r2, r1, nil
}

func checkUnique(ctx context.Context, guests repository.GuestRepository, g *entity.Guest) error {
	other, err := guests.GetByEmail(ctx, g.Email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != g.ID {
		return domain.NewValidationErrorOf(domain.ErrDuplicate, "email", "ya existe un huésped con este correo")
	}
	other, err = guests.GetByDocument(ctx, g.DocumentNumber)
	if err != nil {
		return err
	}
	if other != nil && other.ID != g.ID {
		return domain.NewValidationErrorOf(domain.ErrDuplicate, "document_number", "ya existe un huésped con este número de documento")
	}
	return nil
}

func applyPatch(g *entity.Guest, in dto.UpdateGuestRequest) error {
	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.Surname != nil {
		g.Surname = *in.Surname
	}
	if in.DocumentType != nil {
		g.DocumentType = *in.DocumentType
	}
	if in.DocumentNumber != nil {
		g.DocumentNumber = *in.DocumentNumber
	}
	if in.Email != nil {
		g.Email = *in.Email
	}
	if in.Phone != nil {
		g.Phone = *in.Phone
	}
	if in.Vehicle != nil {
		g.Vehicle = *in.Vehicle
	}
	if in.Plate != nil {
		g.Plate = *in.Plate
	}
	if in.RoomID != nil {
		g.RoomID = strings.TrimSpace(*in.RoomID)
	}
	if in.CheckIn != nil {
		d, err := parseDate("check_in", *in.CheckIn)
		if err != nil {
			return err
		}
		g.CheckIn = d
	}
	if in.CheckOut != nil {
		d, err := parseDate("check_out", *in.CheckOut)
		if err != nil {
			return err
		}
		g.CheckOut = d
	}
	return nil
}

// normalizeGuest limpia y valida los campos del huésped.
// Correo en minúsculas, placa en mayúsculas, vehículo y placa van juntos.
func normalizeGuest(g *entity.Guest) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Surname = strings.TrimSpace(g.Surname)
	g.DocumentType = strings.TrimSpace(g.DocumentType)
	g.DocumentNumber = strings.TrimSpace(g.DocumentNumber)
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	g.Phone = strings.TrimSpace(g.Phone)
	g.Vehicle = strings.TrimSpace(g.Vehicle)
	g.Plate = strings.ToUpper(strings.TrimSpace(g.Plate))

	if g.Name == "" {
		return domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if g.Surname == "" {
		return domain.NewValidationError("surname", "el apellido es obligatorio")
	}
	if g.DocumentType == "" {
		g.DocumentType = entity.DocumentCitizenID
	}
	if !entity.IsValidDocumentType(g.DocumentType) {
		return domain.NewValidationError("document_type", "tipo de documento no válido")
	}
	if g.DocumentNumber == "" {
		return domain.NewValidationError("document_number", "el número de documento es obligatorio")
	}
	if g.Email == "" {
		return domain.NewValidationError("email", "el correo es obligatorio")
	}
	if _, err := mail.ParseAddress(g.Email); err != nil {
		return domain.NewValidationError("email", "correo no válido")
	}
	if utf8.RuneCountInString(g.Phone) > entity.GuestPhoneMaxLen {
		return domain.NewValidationError("phone", "el teléfono no puede superar 15 caracteres")
	}
	if g.Vehicle != "" && g.Plate == "" {
		return domain.NewValidationError("plate", "debe indicar la placa del vehículo")
	}
	if g.Plate != "" && g.Vehicle == "" {
		return domain.NewValidationError("vehicle", "debe indicar el vehículo de la placa")
	}
	if g.RoomID == "" {
		return domain.NewValidationError("room_id", "la habitación es obligatoria")
	}
	if g.CheckOut.IsZero() {
		return domain.NewValidationError("check_out", "la fecha de salida es obligatoria")
	}
	if dateOnly(g.CheckOut).Before(dateOnly(g.CheckIn)) {
		return domain.NewValidationError("check_out", "la fecha de salida no puede ser anterior a la de entrada")
	}
	return nil
}

// parseDate acepta AAAA-MM-DD o RFC3339.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dto.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(field, "fecha no válida, use AAAA-MM-DD")
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
