package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestion-hotel/internal/domain"
)

func TestValidationError_MatchesSentinels(t *testing.T) {
	err := fmt.Errorf("crear consumo: %w",
		domain.NewValidationErrorOf(domain.ErrInsufficientStock, "quantity", "stock insuficiente"))

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.False(t, errors.Is(err, domain.ErrRoomFull))

	var ve *domain.ValidationError
	if assert.True(t, errors.As(err, &ve)) {
		assert.Equal(t, "quantity", ve.Field)
		assert.Equal(t, "stock insuficiente", ve.Message)
	}
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "number: requerido", domain.NewValidationError("number", "requerido").Error())
	assert.Equal(t, "sin campo", domain.NewValidationError("", "sin campo").Error())
	assert.False(t, errors.Is(domain.NewValidationError("x", "y"), domain.ErrNotFound))
}
