// Package hotel contiene las reglas de ocupación de habitaciones.
package hotel

import "github.com/jhoicas/gestion-hotel/internal/domain/entity"

// IsFull indica si la habitación no admite más huéspedes.
func IsFull(capacity, guests int) bool {
	return guests >= capacity
}

// NextStatus calcula el estado de la habitación tras un cambio de huéspedes:
// llena pasa a ocupada y, si no, vuelve a disponible. No hay estado "parcialmente ocupada".
func NextStatus(capacity, guests int) string {
	if IsFull(capacity, guests) {
		return entity.RoomStatusOccupied
	}
	return entity.RoomStatusAvailable
}
