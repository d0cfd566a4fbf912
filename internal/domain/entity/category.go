package entity

import "time"

// Category agrupa productos. Solo las activas se pueden asignar.
type Category struct {
	ID          string
	Name        string // único sin distinguir mayúsculas
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
