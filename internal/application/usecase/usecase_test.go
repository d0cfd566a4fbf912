package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/lodging"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/application/usecase"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/infrastructure/memory"
)

// ─── helpers ───────────────────────────────────────────────────────────────

type env struct {
	ctx        context.Context
	repos      ports.Repos
	rooms      *usecase.RoomUseCase
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	guests     *lodging.GuestUseCase
	ledger     *consumption.LedgerUseCase
	cache      *mapCache
}

// mapCache cache en memoria para verificar hits e invalidaciones.
type mapCache struct {
	summary *dto.RoomSummary
	hits    int
}

func (c *mapCache) Get(context.Context) (*dto.RoomSummary, bool) {
	if c.summary == nil {
		return nil, false
	}
	c.hits++
	s := *c.summary
	return &s, true
}
func (c *mapCache) Set(_ context.Context, s dto.RoomSummary) { c.summary = &s }
func (c *mapCache) Invalidate(context.Context) { c.summary = nil }

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	cache := &mapCache{}
	return &env{
		ctx:        context.Background(),
		repos:      repos,
		rooms:      usecase.NewRoomUseCase(tx, repos, cache, zerolog.Nop()),
		products:   usecase.NewProductUseCase(tx, repos),
		categories: usecase.NewCategoryUseCase(repos.Categories),
		guests:     lodging.NewGuestUseCase(tx, repos, cache, zerolog.Nop()),
		ledger:     consumption.NewLedgerUseCase(tx, repos, zerolog.Nop()),
		cache:      cache,
	}
}

func (e *env) createRoom(t *testing.T, number string, capacity int) *dto.RoomResponse {
	t.Helper()
	r, err := e.rooms.Create(e.ctx, dto.CreateRoomRequest{
		Number: number, Type: entity.RoomTypeCouple, Capacity: capacity, Price: decimal.NewFromInt(150000),
	})
	require.NoError(t, err)
	return r
}

func (e *env) createGuest(t *testing.T, roomID, key string) *dto.GuestResponse {
	t.Helper()
	g, err := e.guests.Create(e.ctx, dto.CreateGuestRequest{
		Name: "Carlos", Surname: "Ruiz", DocumentNumber: key, Email: key + "@example.com",
		RoomID: roomID, CheckOut: "2099-01-01",
	})
	require.NoError(t, err)
	return g
}

func (e *env) createProduct(t *testing.T, name string, stock int) *dto.ProductResponse {
	t.Helper()
	p, err := e.products.Create(e.ctx, dto.CreateProductRequest{
		Name: name, UnitPrice: decimal.NewFromInt(3000), InitialStock: stock,
	})
	require.NoError(t, err)
	return p
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, llegó %v", err)
	return ve.Field
}

// ─── rooms ─────────────────────────────────────────────────────────────────

func TestRoomCreate_Defaults(t *testing.T) {
	e := newEnv(t)
	r, err := e.rooms.Create(e.ctx, dto.CreateRoomRequest{Number: " 101 ", Type: entity.RoomTypeSingle, Price: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, "101", r.Number)
	assert.Equal(t, entity.RoomStatusAvailable, r.Status)
	assert.Equal(t, 1, r.Capacity)
}

func TestRoomCreate_Validation(t *testing.T) {
	e := newEnv(t)
	e.createRoom(t, "101", 2)

	cases := map[string]dto.CreateRoomRequest{
		"number":   {Type: entity.RoomTypeSuite},
		"type":     {Number: "102", Type: "cabaña"},
		"status":   {Number: "102", Type: entity.RoomTypeSuite, Status: "libre"},
		"capacity": {Number: "102", Type: entity.RoomTypeSuite, Capacity: -1},
		"price":    {Number: "102", Type: entity.RoomTypeSuite, Price: decimal.NewFromInt(-1)},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := e.rooms.Create(e.ctx, in)
			assert.Equal(t, field, fieldOf(t, err))
		})
	}

	_, err := e.rooms.Create(e.ctx, dto.CreateRoomRequest{Number: "101", Type: entity.RoomTypeSuite})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	_, err = e.rooms.Create(e.ctx, dto.CreateRoomRequest{Number: "12345678901", Type: entity.RoomTypeSuite})
	assert.Equal(t, "number", fieldOf(t, err))
}

func TestRoomUpdate_NumberUniqueExcludingItself(t *testing.T) {
	e := newEnv(t)
	a := e.createRoom(t, "101", 2)
	e.createRoom(t, "102", 2)

	same := "101"
	_, err := e.rooms.Update(e.ctx, a.ID, dto.UpdateRoomRequest{Number: &same})
	require.NoError(t, err)

	taken := "102"
	_, err = e.rooms.Update(e.ctx, a.ID, dto.UpdateRoomRequest{Number: &taken})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = e.rooms.Update(e.ctx, "missing", dto.UpdateRoomRequest{Number: &same})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomUpdate_CapacityAgainstGuests(t *testing.T) {
	e := newEnv(t)
	r := e.createRoom(t, "101", 2)
	e.createGuest(t, r.ID, "a")
	e.createGuest(t, r.ID, "b")

	got, err := e.rooms.GetByID(e.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusOccupied, got.Status)
	assert.Equal(t, 2, got.GuestCount)

	one := 1
	_, err = e.rooms.Update(e.ctx, r.ID, dto.UpdateRoomRequest{Capacity: &one})
	assert.Equal(t, "capacity", fieldOf(t, err))

	three := 3
	up, err := e.rooms.Update(e.ctx, r.ID, dto.UpdateRoomRequest{Capacity: &three})
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusAvailable, up.Status)
	assert.Equal(t, 2, up.GuestCount)
}

func TestRoomDelete_RestoresStockAndCascades(t *testing.T) {
	e := newEnv(t)
	r := e.createRoom(t, "101", 2)
	other := e.createRoom(t, "102", 2)
	g := e.createGuest(t, r.ID, "a")
	p := e.createProduct(t, "Agua", 10)

	_, err := e.ledger.Create(e.ctx, dto.CreateConsumptionRequest{RoomID: r.ID, GuestID: g.ID, ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	_, err = e.ledger.Create(e.ctx, dto.CreateConsumptionRequest{RoomID: other.ID, ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, e.rooms.Delete(e.ctx, r.ID))

	got, err := e.products.GetByID(e.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)

	_, err = e.guests.GetByID(e.ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := e.ledger.List(e.ctx, dto.ConsumptionFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, other.ID, list.Items[0].RoomID)

	assert.ErrorIs(t, e.rooms.Delete(e.ctx, r.ID), domain.ErrNotFound)
}

func TestRoomList_SummaryAndCounts(t *testing.T) {
	e := newEnv(t)
	a := e.createRoom(t, "102", 1)
	e.createRoom(t, "101", 2)
	maint := "mantenimiento"
	c := e.createRoom(t, "103", 2)
	_, err := e.rooms.Update(e.ctx, c.ID, dto.UpdateRoomRequest{Status: &maint})
	require.NoError(t, err)
	e.createGuest(t, a.ID, "a")

	out, err := e.rooms.List(e.ctx, dto.RoomFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "101", out.Items[0].Number)
	assert.Equal(t, 1, out.Items[1].GuestCount)
	assert.Equal(t, dto.RoomSummary{Total: 3, Available: 1, Occupied: 1, Maintenance: 1}, out.Summary)

	_, err = e.rooms.Summary(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, e.cache.hits)

	filtered, err := e.rooms.List(e.ctx, dto.RoomFilter{Status: entity.RoomStatusOccupied}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "102", filtered.Items[0].Number)
	assert.Equal(t, 1, filtered.Page.Total)
}

// ─── products / categories ─────────────────────────────────────────────────

func TestProductCreate_Validation(t *testing.T) {
	e := newEnv(t)
	e.createProduct(t, "Agua", 5)

	_, err := e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Ab", UnitPrice: decimal.NewFromInt(1)})
	assert.Equal(t, "name", fieldOf(t, err))
	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Jugo", UnitPrice: decimal.Zero})
	assert.Equal(t, "unit_price", fieldOf(t, err))
	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Jugo", UnitPrice: decimal.NewFromInt(1), InitialStock: -2})
	assert.Equal(t, "initial_stock", fieldOf(t, err))
	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Agua", UnitPrice: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestProductCreate_NewCategoryInline(t *testing.T) {
	e := newEnv(t)
	p, err := e.products.Create(e.ctx, dto.CreateProductRequest{
		Name: "Cerveza", UnitPrice: decimal.NewFromInt(6000), InitialStock: 24, NewCategory: " Bebidas ",
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.CategoryID)

	cat, err := e.categories.GetByID(e.ctx, p.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", cat.Name)
	assert.True(t, cat.Active)

	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{
		Name: "Vino", UnitPrice: decimal.NewFromInt(40000), NewCategory: "BEBIDAS",
	})
	assert.Equal(t, "new_category", fieldOf(t, err))
	// la transacción no dejó el producto a medias
	vino, err := e.repos.Products.GetByName(e.ctx, "Vino")
	require.NoError(t, err)
	assert.Nil(t, vino)
	list, _ := e.products.List(e.ctx, dto.ProductFilter{}, dto.PageRequest{})
	assert.Len(t, list.Items, 1)
}

func TestProductCategory_MustBeActive(t *testing.T) {
	e := newEnv(t)
	inactive := false
	cat, err := e.categories.Create(e.ctx, dto.CreateCategoryRequest{Name: "Temporada", Active: &inactive})
	require.NoError(t, err)

	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Helado", UnitPrice: decimal.NewFromInt(5000), CategoryID: cat.ID})
	assert.Equal(t, "category_id", fieldOf(t, err))

	active, err := e.categories.List(e.ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := e.categories.List(e.ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductUpdate_NeverTouchesStock(t *testing.T) {
	e := newEnv(t)
	p := e.createProduct(t, "Agua", 10)
	r := e.createRoom(t, "101", 1)
	_, err := e.ledger.Create(e.ctx, dto.CreateConsumptionRequest{RoomID: r.ID, ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)

	price := decimal.NewFromInt(3500)
	name := "Agua mineral"
	up, err := e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 6, up.Stock)
	assert.Equal(t, "Agua mineral", up.Name)
	assert.True(t, price.Equal(up.UnitPrice))
}

func TestCategoryDelete_DetachesProducts(t *testing.T) {
	e := newEnv(t)
	cat, err := e.categories.Create(e.ctx, dto.CreateCategoryRequest{Name: "Snacks"})
	require.NoError(t, err)
	p, err := e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Papas", UnitPrice: decimal.NewFromInt(2500), CategoryID: cat.ID})
	require.NoError(t, err)

	_, err = e.categories.Create(e.ctx, dto.CreateCategoryRequest{Name: "snacks"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	require.NoError(t, e.categories.Delete(e.ctx, cat.ID))
	got, err := e.products.GetByID(e.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryID)
	assert.ErrorIs(t, e.categories.Delete(e.ctx, cat.ID), domain.ErrNotFound)
}

func TestCategoryUpdate(t *testing.T) {
	e := newEnv(t)
	a, err := e.categories.Create(e.ctx, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	_, err = e.categories.Create(e.ctx, dto.CreateCategoryRequest{Name: "Snacks"})
	require.NoError(t, err)

	dup := "SNACKS"
	_, err = e.categories.Update(e.ctx, a.ID, dto.UpdateCategoryRequest{Name: &dup})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	off := false
	up, err := e.categories.Update(e.ctx, a.ID, dto.UpdateCategoryRequest{Active: &off})
	require.NoError(t, err)
	assert.False(t, up.Active)
}
