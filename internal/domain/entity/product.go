package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductNameMinLen es la longitud mínima del nombre de un producto.
const ProductNameMinLen = 3

// Product es un artículo vendible en el hotel (minibar, servicio a la habitación).
// Stock se fija al crear y después solo lo modifica el libro de consumos.
type Product struct {
	ID          string
	Name        string // único
	Description string
	UnitPrice   decimal.Decimal
	Stock       int
	CategoryID  string // vacío si no tiene categoría
	Available   bool
	ImageRef    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
