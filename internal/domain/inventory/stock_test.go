package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/inventory"
)

func TestReserve(t *testing.T) {
	left, err := inventory.Reserve(10, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, left)

	left, err = inventory.Reserve(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, left)
}

func TestReserve_Insufficient(t *testing.T) {
	left, err := inventory.Reserve(3, 20)
	require.Error(t, err)
	assert.Equal(t, 3, left)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "quantity", ve.Field)
}

func TestReserve_NonPositive(t *testing.T) {
	_, err := inventory.Reserve(5, 0)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestReleaseAndLineTotal(t *testing.T) {
	assert.Equal(t, 10, inventory.Release(6, 4))
	assert.True(t, decimal.RequireFromString("7500").Equal(inventory.LineTotal(3, decimal.NewFromInt(2500))))
}
