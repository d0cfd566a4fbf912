package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de habitación.
const (
	RoomStatusAvailable   = "disponible"
	RoomStatusReserved    = "reservada"
	RoomStatusOccupied    = "ocupada"
	RoomStatusCleaning    = "aseo"
	RoomStatusMaintenance = "mantenimiento"
)

// Tipos de habitación.
const (
	RoomTypeFamily = "familiar"
	RoomTypeCouple = "pareja"
	RoomTypeSuite  = "suite"
	RoomTypeSingle = "individual"
)

// RoomNumberMaxLen es la longitud máxima del número de habitación.
const RoomNumberMaxLen = 10

// Room representa una habitación. Es dueña de sus huéspedes y consumos:
// al eliminarla se eliminan ambos.
type Room struct {
	ID          string
	Number      string // único
	Type        string
	Status      string
	Capacity    int
	Price       decimal.Decimal // tarifa por noche
	Description string
	ImageRef    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomStatuses lista los estados válidos en orden de presentación.
func RoomStatuses() []string {
	return []string{RoomStatusAvailable, RoomStatusReserved, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance}
}

// RoomTypes lista los tipos válidos.
func RoomTypes() []string {
	return []string{RoomTypeFamily, RoomTypeCouple, RoomTypeSuite, RoomTypeSingle}
}

func IsValidRoomStatus(s string) bool { return contains(RoomStatuses(), s) }

func IsValidRoomType(t string) bool { return contains(RoomTypes(), t) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
