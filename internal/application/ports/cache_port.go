package ports

import (
	"context"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
)

// RoomSummaryCache guarda el resumen de habitaciones por estado.
// Un fallo del cache nunca debe romper la operación: Get devuelve (nil, false) ante cualquier error.
type RoomSummaryCache interface {
	Get(ctx context.Context) (*dto.RoomSummary, bool)
	Set(ctx context.Context, summary dto.RoomSummary)
	Invalidate(ctx context.Context)
}

// NopRoomSummaryCache se usa cuando no hay Redis configurado.
type NopRoomSummaryCache struct{}

func (NopRoomSummaryCache) Get(context.Context) (*dto.RoomSummary, bool) { return nil, false }
func (NopRoomSummaryCache) Set(context.Context, dto.RoomSummary) {}
func (NopRoomSummaryCache) Invalidate(context.Context) {}
