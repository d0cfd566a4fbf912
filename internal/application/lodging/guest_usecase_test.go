package lodging_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/lodging"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/infrastructure/memory"
)

type countingCache struct {
	ports.NopRoomSummaryCache
	invalidations int
}

func (c *countingCache) Invalidate(context.Context) { c.invalidations++ }

func setup(t *testing.T) (context.Context, ports.Repos, *lodging.GuestUseCase, *countingCache) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	cache := &countingCache{}
	return context.Background(), repos, lodging.NewGuestUseCase(memory.NewTxRunner(store), repos, cache, zerolog.Nop()), cache
}

func addRoom(t *testing.T, ctx context.Context, repos ports.Repos, id, number, status string, capacity int) {
	t.Helper()
	require.NoError(t, repos.Rooms.Create(ctx, &entity.Room{
		ID: id, Number: number, Type: entity.RoomTypeFamily, Status: status, Capacity: capacity, Price: decimal.NewFromInt(90000),
	}))
}

func roomStatus(t *testing.T, ctx context.Context, repos ports.Repos, id string) string {
	t.Helper()
	room, err := repos.Rooms.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, room)
	return room.Status
}

func guestIn(roomID, key string) dto.CreateGuestRequest {
	return dto.CreateGuestRequest{
		Name:           "Laura",
		Surname:        "Gómez",
		DocumentNumber: " " + key + " ",
		Email:          " " + key + "@Example.COM ",
		Phone:          "3001234567",
		RoomID:         roomID,
		CheckIn:        "2026-10-16",
		CheckOut:       "2026-10-18",
	}
}

func TestRoom101Scenario(t *testing.T) {
	ctx, repos, uc, cache := setup(t)
	addRoom(t, ctx, repos, "r101", "101", entity.RoomStatusAvailable, 2)

	a, err := uc.Create(ctx, guestIn("r101", "a"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus(t, ctx, repos, "r101"))

	_, err = uc.Create(ctx, guestIn("r101", "b"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusOccupied, roomStatus(t, ctx, repos, "r101"))

	_, err = uc.Create(ctx, guestIn("r101", "c"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRoomFull))
	n, _ := repos.Guests.CountByRoom(ctx, "r101")
	assert.Equal(t, 2, n)

	require.NoError(t, uc.Delete(ctx, a.ID))
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus(t, ctx, repos, "r101"))
	assert.Equal(t, 3, cache.invalidations)
}

func TestCreate_Normalizes(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "201", entity.RoomStatusAvailable, 3)

	in := guestIn("r1", "ana")
	in.Vehicle = "Mazda 3"
	in.Plate = " abc123 "
	out, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, "ana", out.DocumentNumber)
	assert.Equal(t, "ABC123", out.Plate)
	assert.Equal(t, entity.DocumentCitizenID, out.DocumentType)
	assert.Equal(t, "201", out.RoomNumber)
	assert.Equal(t, "2026-10-16", out.CheckIn)
}

func TestCreate_Validation(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "201", entity.RoomStatusAvailable, 3)

	cases := []struct {
		field string
		mut   func(in *dto.CreateGuestRequest)
	}{
		{"check_out", func(in *dto.CreateGuestRequest) { in.CheckOut = "" }},
		{"check_out", func(in *dto.CreateGuestRequest) { in.CheckOut = "2026-10-01" }},
		{"plate", func(in *dto.CreateGuestRequest) { in.Vehicle = "Moto" }},
		{"vehicle", func(in *dto.CreateGuestRequest) { in.Plate = "XYZ12" }},
		{"email", func(in *dto.CreateGuestRequest) { in.Email = "no-es-correo" }},
		{"document_type", func(in *dto.CreateGuestRequest) { in.DocumentType = "Licencia" }},
		{"phone", func(in *dto.CreateGuestRequest) { in.Phone = "1234567890123456" }},
		{"room_id", func(in *dto.CreateGuestRequest) { in.RoomID = "missing" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			in := guestIn("r1", "x")
			tc.mut(&in)
			_, err := uc.Create(ctx, in)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "err=%v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestCreate_DuplicateEmailAndDocument(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "201", entity.RoomStatusAvailable, 5)

	_, err := uc.Create(ctx, guestIn("r1", "ana"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, guestIn("r1", "ANA"))
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	in := guestIn("r1", "otra")
	in.DocumentNumber = "ana"
	_, err = uc.Create(ctx, in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "document_number", ve.Field)
}

func TestGuestChangesRecomputeManualStatus(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "301", entity.RoomStatusMaintenance, 2)
	addRoom(t, ctx, repos, "r2", "302", entity.RoomStatusReserved, 1)

	g, err := uc.Create(ctx, guestIn("r1", "a"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus(t, ctx, repos, "r1"))

	_, err = uc.Create(ctx, guestIn("r2", "b"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusOccupied, roomStatus(t, ctx, repos, "r2"))

	require.NoError(t, repos.Rooms.UpdateStatus(ctx, "r1", entity.RoomStatusCleaning))
	require.NoError(t, uc.Delete(ctx, g.ID))
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus(t, ctx, repos, "r1"))
}

func TestUpdate_MoveGuest(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "101", entity.RoomStatusAvailable, 1)
	addRoom(t, ctx, repos, "r2", "102", entity.RoomStatusAvailable, 1)
	addRoom(t, ctx, repos, "r3", "103", entity.RoomStatusAvailable, 1)

	a, err := uc.Create(ctx, guestIn("r1", "a"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, guestIn("r3", "b"))
	require.NoError(t, err)
	require.Equal(t, entity.RoomStatusOccupied, roomStatus(t, ctx, repos, "r1"))

	// la 103 está llena
	target := "r3"
	_, err = uc.Update(ctx, a.ID, dto.UpdateGuestRequest{RoomID: &target})
	assert.True(t, errors.Is(err, domain.ErrRoomFull))
	assert.Equal(t, entity.RoomStatusOccupied, roomStatus(t, ctx, repos, "r1"))

	target = "r2"
	moved, err := uc.Update(ctx, a.ID, dto.UpdateGuestRequest{RoomID: &target})
	require.NoError(t, err)
	assert.Equal(t, "102", moved.RoomNumber)
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus(t, ctx, repos, "r1"))
	assert.Equal(t, entity.RoomStatusOccupied, roomStatus(t, ctx, repos, "r2"))
}

func TestUpdate_MoveGuestDetachesOldConsumptions(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "101", entity.RoomStatusAvailable, 2)
	addRoom(t, ctx, repos, "r2", "102", entity.RoomStatusAvailable, 2)
	a, err := uc.Create(ctx, guestIn("r1", "a"))
	require.NoError(t, err)
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "p1", Name: "Water", UnitPrice: decimal.NewFromInt(2500), Stock: 5, Available: true,
	}))
	require.NoError(t, repos.Consumptions.Create(ctx, &entity.Consumption{
		ID: "c1", RoomID: "r1", GuestID: a.ID, ProductID: "p1", Quantity: 1, Total: decimal.NewFromInt(2500),
	}))

	target := "r2"
	_, err = uc.Update(ctx, a.ID, dto.UpdateGuestRequest{RoomID: &target})
	require.NoError(t, err)

	c, err := repos.Consumptions.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "r1", c.RoomID)
	assert.Empty(t, c.GuestID)
}

func TestCreate_ConcurrentGuestsRespectCapacity(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	uc := lodging.NewGuestUseCase(memory.NewTxRunner(store), repos, ports.NopRoomSummaryCache{}, zerolog.Nop())
	addRoom(t, ctx, repos, "r1", "301", entity.RoomStatusAvailable, 3)

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Create(ctx, guestIn("r1", fmt.Sprintf("h%02d", i)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrRoomFull):
				full++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, workers-3, full)
	n, err := repos.Guests.CountByRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, entity.RoomStatusOccupied, roomStatus(t, ctx, repos, "r1"))
}

func TestUpdate_PatchFields(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "101", entity.RoomStatusAvailable, 2)
	g, err := uc.Create(ctx, guestIn("r1", "a"))
	require.NoError(t, err)

	phone := " 555 "
	email := "NUEVO@example.com"
	out, err := uc.Update(ctx, g.ID, dto.UpdateGuestRequest{Phone: &phone, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "555", out.Phone)
	assert.Equal(t, "nuevo@example.com", out.Email)
	assert.Equal(t, "Laura", out.Name)

	_, err = uc.Update(ctx, "missing", dto.UpdateGuestRequest{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAndList(t *testing.T) {
	ctx, repos, uc, _ := setup(t)
	addRoom(t, ctx, repos, "r1", "101", entity.RoomStatusAvailable, 2)
	g, err := uc.Create(ctx, guestIn("r1", "a"))
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "101", got.RoomNumber)

	byRoom, err := uc.ListByRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, byRoom, 1)

	_, err = uc.ListByRoom(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "101", list.Items[0].RoomNumber)
}
