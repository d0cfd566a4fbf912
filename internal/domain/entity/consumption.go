package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consumption registra el consumo de un producto cargado a una habitación.
// Total = Quantity × precio unitario del producto al momento de registrar.
type Consumption struct {
	ID        string
	RoomID    string
	GuestID   string // vacío si no hay huésped o si fue eliminado
	ProductID string
	Quantity  int
	Total     decimal.Decimal
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
