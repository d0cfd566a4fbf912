package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/gestion-hotel/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// isInvalidText verifica si el valor no se pudo convertir al tipo de la columna (22P02),
// p. ej. un ID que no es uuid.
func isInvalidText(err error) bool {
	return pgCode(err) == pgInvalidText
}

// isNoRow indica que la búsqueda no encontró fila. Un ID mal formado tampoco existe.
func isNoRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// wrapWriteErr traduce errores de escritura a errores de dominio.
func wrapWriteErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: referencia inexistente: %w", op, domain.ErrNotFound)
	case isInvalidText(err):
		return fmt.Errorf("%s: valor no válido: %w", op, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// nullIfEmpty envía NULL para IDs opcionales vacíos.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// limitClause devuelve LIMIT/OFFSET; limit <= 0 no limita.
func limitClause(limit, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return fmt.Sprintf(" OFFSET %d", offset)
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

// expectOne devuelve domain.ErrNotFound si el comando no afectó filas.
func expectOne(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
