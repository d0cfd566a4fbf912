package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock fija el stock una sola vez.
// NewCategory crea (o reutiliza) una categoría por nombre y tiene prioridad sobre CategoryID.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock int             `json:"initial_stock"`
	CategoryID   string          `json:"category_id"`
	NewCategory  string          `json:"new_category"`
	Available    *bool           `json:"available"` // por defecto true
	ImageRef     string          `json:"image_ref"`
}

// UpdateProductRequest parche de un producto. No existe campo de stock.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	CategoryID  *string          `json:"category_id"` // "" quita la categoría
	NewCategory *string          `json:"new_category"`
	Available   *bool            `json:"available"`
	ImageRef    *string          `json:"image_ref"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
	CategoryID  string          `json:"category_id,omitempty"`
	Available   bool            `json:"available"`
	ImageRef    string          `json:"image_ref"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	CategoryID    string `query:"category_id"`
	OnlyAvailable bool   `query:"available"`
}
