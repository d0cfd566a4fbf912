package consumption

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

// StatementPDFGenerator puerto de salida para la representación PDF del estado de cuenta.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, st *dto.RoomStatement) ([]byte, error)
}

// StatementUseCase arma el estado de cuenta de una habitación: huéspedes, consumos y total.
type StatementUseCase struct {
	repos     ports.Repos
	generator StatementPDFGenerator
	hotelName string
	now       func() time.Time
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(repos ports.Repos, generator StatementPDFGenerator, hotelName string) *StatementUseCase {
	return &StatementUseCase{repos: repos, generator: generator, hotelName: hotelName, now: time.Now}
}

// Build recupera los datos del estado de cuenta. domain.ErrNotFound si la habitación no existe.
func (uc *StatementUseCase) Build(ctx context.Context, roomID string) (*dto.RoomStatement, error) {
	room, err := uc.repos.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("estado de cuenta: obtener habitación: %w", err)
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	guests, err := uc.repos.Guests.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("estado de cuenta: obtener huéspedes: %w", err)
	}
	consumptions, err := uc.repos.Consumptions.List(ctx, repository.ConsumptionFilter{RoomID: room.ID}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("estado de cuenta: obtener consumos: %w", err)
	}

	st := &dto.RoomStatement{
		HotelName:   uc.hotelName,
		Room:        dto.RoomFromEntity(room, len(guests)),
		Guests:      make([]dto.GuestResponse, 0, len(guests)),
		Lines:       make([]dto.StatementLine, 0, len(consumptions)),
		Total:       decimal.Zero,
		GeneratedAt: uc.now(),
	}
	names := make(map[string]string, len(guests))
	for _, g := range guests {
		st.Guests = append(st.Guests, dto.GuestFromEntity(g, room.Number))
		names[g.ID] = g.FullName()
	}

	products := make(map[string]string)
	for _, c := range consumptions {
		name, ok := products[c.ProductID]
		if !ok {
			name = "Producto " + c.ProductID
			if p, pErr := uc.repos.Products.GetByID(ctx, c.ProductID); pErr == nil && p != nil {
				name = p.Name
			}
			products[c.ProductID] = name
		}
		st.Lines = append(st.Lines, dto.StatementLine{
			ConsumptionID: c.ID,
			ProductName:   name,
			GuestName:     names[c.GuestID],
			Quantity:      c.Quantity,
			Total:         c.Total,
			Notes:         c.Notes,
			CreatedAt:     c.CreatedAt,
		})
		st.Total = st.Total.Add(c.Total)
	}
	return st, nil
}

// PDF genera el estado de cuenta en PDF. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *StatementUseCase) PDF(ctx context.Context, roomID string) (pdfBytes []byte, filename string, err error) {
	st, err := uc.Build(ctx, roomID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, st)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("estado_cuenta_%s.pdf", st.Room.Number), nil
}
