package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-hotel/internal/domain"
)

// Reserve descuenta quantity del stock disponible (servicio de dominio).
// Devuelve ValidationError sobre "quantity" si la cantidad no es positiva o supera el stock.
func Reserve(stock, quantity int) (int, error) {
	if quantity < 1 {
		return stock, domain.NewValidationError("quantity", "la cantidad debe ser mayor o igual a 1")
	}
	if quantity > stock {
		return stock, domain.NewValidationErrorOf(domain.ErrInsufficientStock, "quantity", "stock insuficiente para el producto")
	}
	return stock - quantity, nil
}

// Release devuelve quantity al stock.
func Release(stock, quantity int) int {
	return stock + quantity
}

// LineTotal = cantidad × precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
