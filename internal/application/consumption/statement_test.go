package consumption_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/domain"
)

type fakeGenerator struct {
	got *dto.RoomStatement
}

func (g *fakeGenerator) GenerateStatementPDF(_ context.Context, st *dto.RoomStatement) ([]byte, error) {
	g.got = st
	return []byte("%PDF-fake"), nil
}

func TestStatement_BuildTotals(t *testing.T) {
	f := newFixture(t)
	f.room(t, "r1", "101")
	f.guest(t, "g1", "r1")
	f.product(t, "p1", "Agua", 2500, 10)
	f.product(t, "p2", "Snack", 3000, 10)

	_, err := f.ledger.Create(f.ctx, dto.CreateConsumptionRequest{RoomID: "r1", GuestID: "g1", ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.ledger.Create(f.ctx, dto.CreateConsumptionRequest{RoomID: "r1", ProductID: "p2", Quantity: 1})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := consumption.NewStatementUseCase(f.repos, gen, "Hotel Prueba")

	st, err := uc.Build(f.ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Hotel Prueba", st.HotelName)
	assert.Equal(t, "101", st.Room.Number)
	assert.Equal(t, 1, st.Room.GuestCount)
	require.Len(t, st.Lines, 2)
	assert.True(t, decimal.NewFromInt(8000).Equal(st.Total))
	assert.Equal(t, "Snack", st.Lines[0].ProductName)
	assert.Equal(t, "Agua", st.Lines[1].ProductName)
	assert.Equal(t, "Huésped g1", st.Lines[1].GuestName)

	pdf, name, err := uc.PDF(f.ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "estado_cuenta_101.pdf", name)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	require.NotNil(t, gen.got)
}

func TestStatement_UnknownRoom(t *testing.T) {
	f := newFixture(t)
	uc := consumption.NewStatementUseCase(f.repos, &fakeGenerator{}, "Hotel")
	_, err := uc.Build(f.ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
