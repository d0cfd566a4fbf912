package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/lodging"
	"github.com/jhoicas/gestion-hotel/internal/application/usecase"
)

// RoomHandler maneja /api/rooms, sus huéspedes y su estado de cuenta.
type RoomHandler struct {
	uc        *usecase.RoomUseCase
	guests    *lodging.GuestUseCase
	statement *consumption.StatementUseCase
}

// NewRoomHandler construye el handler.
func NewRoomHandler(uc *usecase.RoomUseCase, guests *lodging.GuestUseCase, statement *consumption.StatementUseCase) *RoomHandler {
	return &RoomHandler{uc: uc, guests: guests, statement: statement}
}

// Create godoc
// @Summary      Crear habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomRequest  true  "Datos de la habitación"
// @Success      201   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoomRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar habitaciones con ocupación y resumen por estado
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        type    query  string  false  "Tipo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.RoomListResponse
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
	var f dto.RoomFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Conteo de habitaciones por estado
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoomSummary
// @Router       /api/rooms/summary [get]
func (h *RoomHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener habitación
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la habitación"
// @Param        body  body  dto.UpdateRoomRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [put]
func (h *RoomHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRoomRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar habitación (con sus huéspedes y consumos; el stock se devuelve)
// @Tags         rooms
// @Security     Bearer
// @Param        id   path  string  true  "ID de la habitación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Guests lista los huéspedes de la habitación.
func (h *RoomHandler) Guests(c *fiber.Ctx) error {
	out, err := h.guests.ListByRoom(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddGuest registra un huésped en la habitación de la ruta; room_id del cuerpo se ignora.
func (h *RoomHandler) AddGuest(c *fiber.Ctx) error {
	var in dto.CreateGuestRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	in.RoomID = c.Params("id")
	out, err := h.guests.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta de la habitación
// @Tags         rooms
// @Security     Bearer
// @Produce      json,application/pdf
// @Param        id      path   string  true   "ID de la habitación"
// @Param        format  query  string  false  "json | pdf"  default(pdf)
// @Success      200  {object}  dto.RoomStatement
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/statement [get]
func (h *RoomHandler) Statement(c *fiber.Ctx) error {
	if c.Query("format", "pdf") == "json" {
		st, err := h.statement.Build(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(st)
	}
	pdfBytes, filename, err := h.statement.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
