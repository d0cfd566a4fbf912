package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidBody       = "INVALID_BODY"
	CodeValidation        = "VALIDATION"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeRoomFull          = "ROOM_FULL"
	CodeDuplicate         = "DUPLICATE"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL"
)

// writeError traduce un error de la capa de aplicación a respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var field string
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		field = ve.Field
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeInsufficientStock, Message: err.Error(), Field: field})
	case errors.Is(err, domain.ErrRoomFull):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeRoomFull, Message: err.Error(), Field: field})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeDuplicate, Message: err.Error(), Field: field})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error(), Field: field})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "recurso no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: err.Error()})
	}
}

// parseBody decodifica el JSON rechazando campos desconocidos (p. ej. "stock" en un producto).
func parseBody(c *fiber.Ctx, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido: " + err.Error()})
}

// pageFromQuery lee limit/offset con los valores por defecto de dto.PageRequest.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultLimit), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// requireUUID responde 404 si :id no es un UUID; evita errores de tipo en la base de datos.
func requireUUID(c *fiber.Ctx) error {
	if _, err := uuid.Parse(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "recurso no encontrado"})
	}
	return c.Next()
}

// idField es un ID recibido en el cuerpo o la query, con el campo que lo trae.
type idField struct {
	name  string
	value string
}

func reqID(name, value string) idField { return idField{name: name, value: value} }

func optID(name string, value *string) idField {
	if value == nil {
		return idField{name: name}
	}
	return idField{name: name, value: *value}
}

// validateIDs rechaza con error de validación del campo los IDs no vacíos que no son UUID.
// Las columnas son uuid en Postgres; sin esto el cast fallaría con un 500.
func validateIDs(ids ...idField) error {
	for _, f := range ids {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue
		}
		if _, err := uuid.Parse(v); err != nil {
			return domain.NewValidationError(f.name, "identificador no válido")
		}
	}
	return nil
}
