package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/dto"
)

// ConsumptionHandler maneja /api/consumptions (libro de consumos).
type ConsumptionHandler struct {
	uc *consumption.LedgerUseCase
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *consumption.LedgerUseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar consumo
// @Description  Descuenta stock del producto en la misma transacción. 409 INSUFFICIENT_STOCK si no alcanza.
// @Tags         consumptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsumptionRequest  true  "Consumo"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumptions [post]
func (h *ConsumptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConsumptionRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := validateIDs(reqID("room_id", in.RoomID), reqID("guest_id", in.GuestID), reqID("product_id", in.ProductID)); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar consumos (más recientes primero)
// @Tags         consumptions
// @Security     Bearer
// @Produce      json
// @Param        room_id     query  string  false  "Habitación"
// @Param        guest_id    query  string  false  "Huésped"
// @Param        product_id  query  string  false  "Producto"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ConsumptionListResponse
// @Router       /api/consumptions [get]
func (h *ConsumptionHandler) List(c *fiber.Ctx) error {
	var f dto.ConsumptionFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c, err)
	}
	if err := validateIDs(reqID("room_id", f.RoomID), reqID("guest_id", f.GuestID), reqID("product_id", f.ProductID)); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ConsumptionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar consumo (producto, cantidad, huésped o notas)
// @Tags         consumptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del consumo"
// @Param        body  body  dto.UpdateConsumptionRequest  true  "Cambios"
// @Success      200   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumptions/{id} [put]
func (h *ConsumptionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateConsumptionRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	if err := validateIDs(optID("guest_id", in.GuestID), optID("product_id", in.ProductID)); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina el consumo y devuelve su cantidad al stock.
func (h *ConsumptionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Rooms lista las habitaciones seleccionables para registrar consumos.
func (h *ConsumptionHandler) Rooms(c *fiber.Ctx) error {
	out, err := h.uc.SelectableRooms(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
