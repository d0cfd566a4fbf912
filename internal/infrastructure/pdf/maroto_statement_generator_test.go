package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
)

func TestGenerateStatementPDF(t *testing.T) {
	st := &dto.RoomStatement{
		HotelName: "Hotel Las Palmas",
		Room:      dto.RoomResponse{Number: "101", Type: "pareja", Capacity: 2},
		Guests: []dto.GuestResponse{
			{Name: "Ana", Surname: "Pérez", DocumentNumber: "1010", CheckOut: "2026-10-20"},
		},
		Lines: []dto.StatementLine{
			{ProductName: "Agua", GuestName: "Ana Pérez", Quantity: 4, Total: decimal.NewFromInt(12000), CreatedAt: time.Now()},
		},
		Total:       decimal.NewFromInt(12000),
		GeneratedAt: time.Now(),
	}

	out, err := NewMarotoStatementGenerator().GenerateStatementPDF(context.Background(), st)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateStatementPDF_Empty(t *testing.T) {
	st := &dto.RoomStatement{Room: dto.RoomResponse{Number: "202"}, Total: decimal.Zero, GeneratedAt: time.Now()}
	out, err := NewMarotoStatementGenerator().GenerateStatementPDF(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))

	_, err = NewMarotoStatementGenerator().GenerateStatementPDF(context.Background(), nil)
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
}
