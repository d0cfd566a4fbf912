package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateConsumptionRequest entrada para registrar un consumo.
type CreateConsumptionRequest struct {
	RoomID    string `json:"room_id"`
	GuestID   string `json:"guest_id"` // opcional
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// UpdateConsumptionRequest parche de un consumo. La habitación no se puede cambiar.
// GuestID "" desvincula el huésped.
type UpdateConsumptionRequest struct {
	GuestID   *string `json:"guest_id"`
	ProductID *string `json:"product_id"`
	Quantity  *int    `json:"quantity"`
	Notes     *string `json:"notes"`
}

// ConsumptionResponse salida de un consumo.
type ConsumptionResponse struct {
	ID        string          `json:"id"`
	RoomID    string          `json:"room_id"`
	GuestID   string          `json:"guest_id,omitempty"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ConsumptionListResponse lista paginada de consumos.
type ConsumptionListResponse struct {
	Items []ConsumptionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ConsumptionFilter filtros de listado.
type ConsumptionFilter struct {
	RoomID    string `query:"room_id"`
	GuestID   string `query:"guest_id"`
	ProductID string `query:"product_id"`
}

// StatementLine línea del estado de cuenta de una habitación.
type StatementLine struct {
	ConsumptionID string          `json:"consumption_id"`
	ProductName   string          `json:"product_name"`
	GuestName     string          `json:"guest_name,omitempty"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RoomStatement estado de cuenta: consumos de la habitación y total a pagar.
type RoomStatement struct {
	HotelName   string          `json:"hotel_name"`
	Room        RoomResponse    `json:"room"`
	Guests      []GuestResponse `json:"guests"`
	Lines       []StatementLine `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	GeneratedAt time.Time       `json:"generated_at"`
}
