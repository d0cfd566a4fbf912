package entity

import "time"

// Tipos de documento aceptados.
const (
	DocumentCitizenID   = "Cedula de ciudadania"
	DocumentPassport    = "Pasaporte"
	DocumentForeignerID = "Cedula Extranjera"
	DocumentBirthRecord = "Registro civil"
	DocumentMinorID     = "Tarjeta de Identidad"
)

// GuestPhoneMaxLen es la longitud máxima del teléfono.
const GuestPhoneMaxLen = 15

// Guest es un huésped asignado a una habitación.
type Guest struct {
	ID             string
	Name           string
	Surname        string
	DocumentType   string
	DocumentNumber string // único
	Email          string // único, en minúsculas
	Phone          string
	Vehicle        string // opcional, junto con Plate
	Plate          string // opcional, en mayúsculas
	RoomID         string
	CheckIn        time.Time
	CheckOut       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DocumentTypes lista los tipos de documento válidos.
func DocumentTypes() []string {
	return []string{DocumentCitizenID, DocumentPassport, DocumentForeignerID, DocumentBirthRecord, DocumentMinorID}
}

func IsValidDocumentType(t string) bool { return contains(DocumentTypes(), t) }

// FullName devuelve nombre y apellido.
func (g *Guest) FullName() string {
	if g.Surname == "" {
		return g.Name
	}
	return g.Name + " " + g.Surname
}
