package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestion-hotel/internal/domain"
)

func TestWrapWriteErr_MapsPgCodes(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{pgUniqueViolation, domain.ErrDuplicate},
		{pgForeignKeyViolation, domain.ErrNotFound},
		{pgInvalidText, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		err := wrapWriteErr("create consumption", fmt.Errorf("exec: %w", &pgconn.PgError{Code: tc.code}))
		assert.ErrorIs(t, err, tc.want, tc.code)
	}

	other := errors.New("conexión cerrada")
	err := wrapWriteErr("create consumption", other)
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestIsNoRow_TreatsMalformedIDAsMissing(t *testing.T) {
	assert.True(t, isNoRow(pgx.ErrNoRows))
	assert.True(t, isNoRow(&pgconn.PgError{Code: pgInvalidText}))
	assert.False(t, isNoRow(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isNoRow(errors.New("timeout")))
}
