package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/lodging"
)

// GuestHandler maneja /api/guests.
type GuestHandler struct {
	uc *lodging.GuestUseCase
}

func NewGuestHandler(uc *lodging.GuestUseCase) *GuestHandler {
	return &GuestHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar huésped
// @Description  Rechaza con 409 ROOM_FULL si la habitación ya está completa.
// @Tags         guests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGuestRequest  true  "Datos del huésped"
// @Success      201   {object}  dto.GuestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/guests [post]
func (h *GuestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGuestRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := validateIDs(reqID("room_id", in.RoomID)); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *GuestHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve el huésped con el número de su habitación.
func (h *GuestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update aplica el parche; un room_id distinto mueve al huésped.
func (h *GuestHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGuestRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := validateIDs(optID("room_id", in.RoomID)); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *GuestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
