package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRoomRequest entrada para crear una habitación.
type CreateRoomRequest struct {
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`   // por defecto disponible
	Capacity    int             `json:"capacity"` // por defecto 1
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageRef    string          `json:"image_ref"`
}

// UpdateRoomRequest parche explícito de una habitación; campos nil no cambian.
type UpdateRoomRequest struct {
	Number      *string          `json:"number"`
	Type        *string          `json:"type"`
	Status      *string          `json:"status"`
	Capacity    *int             `json:"capacity"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	ImageRef    *string          `json:"image_ref"`
}

// RoomResponse salida de una habitación con su ocupación actual.
type RoomResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Capacity    int             `json:"capacity"`
	GuestCount  int             `json:"guest_count"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageRef    string          `json:"image_ref"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RoomSummary conteos del tablero de habitaciones.
type RoomSummary struct {
	Total       int `json:"total"`
	Available   int `json:"disponibles"`
	Occupied    int `json:"ocupadas"`
	Maintenance int `json:"mantenimiento"`
}

// RoomListResponse lista paginada de habitaciones con resumen.
type RoomListResponse struct {
	Items   []RoomResponse `json:"items"`
	Summary RoomSummary    `json:"summary"`
	Page    PageResponse   `json:"page"`
}

// RoomOption habitación seleccionable en el formulario de consumos.
type RoomOption struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// RoomFilter filtros del listado de habitaciones.
type RoomFilter struct {
	Status string `query:"status"`
	Type   string `query:"type"`
}
