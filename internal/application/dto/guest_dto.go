package dto

import "time"

// DateLayout formato de fechas de entrada y salida.
const DateLayout = "2006-01-02"

// CreateGuestRequest entrada para registrar un huésped.
// CheckIn es opcional (por defecto ahora); CheckOut es obligatorio. Formato AAAA-MM-DD.
type CreateGuestRequest struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Vehicle        string `json:"vehicle"`
	Plate          string `json:"plate"`
	RoomID         string `json:"room_id"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
}

// UpdateGuestRequest parche explícito de un huésped. RoomID distinto mueve al huésped.
type UpdateGuestRequest struct {
	Name           *string `json:"name"`
	Surname        *string `json:"surname"`
	DocumentType   *string `json:"document_type"`
	DocumentNumber *string `json:"document_number"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Vehicle        *string `json:"vehicle"`
	Plate          *string `json:"plate"`
	RoomID         *string `json:"room_id"`
	CheckIn        *string `json:"check_in"`
	CheckOut       *string `json:"check_out"`
}

// GuestResponse salida de un huésped, con el número de su habitación.
type GuestResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Vehicle        string    `json:"vehicle,omitempty"`
	Plate          string    `json:"plate,omitempty"`
	RoomID         string    `json:"room_id"`
	RoomNumber     string    `json:"room_number,omitempty"`
	CheckIn        string    `json:"check_in"`
	CheckOut       string    `json:"check_out"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GuestListResponse lista paginada de huéspedes.
type GuestListResponse struct {
	Items []GuestResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
