package dto

import "github.com/jhoicas/gestion-hotel/internal/domain/entity"

// RoomFromEntity construye la respuesta de una habitación con su número de huéspedes.
func RoomFromEntity(r *entity.Room, guestCount int) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Number:      r.Number,
		Type:        r.Type,
		Status:      r.Status,
		Capacity:    r.Capacity,
		GuestCount:  guestCount,
		Price:       r.Price,
		Description: r.Description,
		ImageRef:    r.ImageRef,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// GuestFromEntity construye la respuesta de un huésped; roomNumber puede ir vacío.
func GuestFromEntity(g *entity.Guest, roomNumber string) GuestResponse {
	return GuestResponse{
		ID:             g.ID,
		Name:           g.Name,
		Surname:        g.Surname,
		DocumentType:   g.DocumentType,
		DocumentNumber: g.DocumentNumber,
		Email:          g.Email,
		Phone:          g.Phone,
		Vehicle:        g.Vehicle,
		Plate:          g.Plate,
		RoomID:         g.RoomID,
		RoomNumber:     roomNumber,
		CheckIn:        g.CheckIn.Format(DateLayout),
		CheckOut:       g.CheckOut.Format(DateLayout),
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		Available:   p.Available,
		ImageRef:    p.ImageRef,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func CategoryFromEntity(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ConsumptionFromEntity(c *entity.Consumption) ConsumptionResponse {
	return ConsumptionResponse{
		ID:        c.ID,
		RoomID:    c.RoomID,
		GuestID:   c.GuestID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		Total:     c.Total,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
