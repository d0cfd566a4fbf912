package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/lodging"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/application/usecase"
	"github.com/jhoicas/gestion-hotel/internal/infrastructure/memory"
	"github.com/jhoicas/gestion-hotel/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/gestion-hotel/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gestion-hotel/pkg/jwt"
)

func newTestServer(jwtSecret string) *fiber.App {
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	log := zerolog.Nop()
	cache := ports.NopRoomSummaryCache{}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RoomUC:      usecase.NewRoomUseCase(tx, repos, cache, log),
		GuestUC:     lodging.NewGuestUseCase(tx, repos, cache, log),
		ProductUC:   usecase.NewProductUseCase(tx, repos),
		CategoryUC:  usecase.NewCategoryUseCase(repos.Categories),
		LedgerUC:    consumption.NewLedgerUseCase(tx, repos, log),
		StatementUC: consumption.NewStatementUseCase(repos, pdf.NewMarotoStatementGenerator(), "Hotel de Pruebas"),
		JWTSecret:   jwtSecret,
		ServiceName: "gestion-hotel",
		Log:         log,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, authHeader string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func TestRouter_ConsumptionFlow(t *testing.T) {
	app := newTestServer("")

	status, raw := call(t, app, http.MethodPost, "/api/rooms", map[string]any{
		"number": "101", "type": "pareja", "capacity": 2, "price": 120000,
	}, "")
	require.Equal(t, http.StatusCreated, status, string(raw))
	roomID := decode(t, raw)["id"].(string)

	status, raw = call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Water", "unit_price": 2500, "initial_stock": 10,
	}, "")
	require.Equal(t, http.StatusCreated, status, string(raw))
	productID := decode(t, raw)["id"].(string)

	status, raw = call(t, app, http.MethodPost, "/api/rooms/"+roomID+"/guests", map[string]any{
		"name": "Ana", "surname": "Pérez", "document_number": "1010", "email": "ana@example.com",
		"phone": "3001112233", "check_out": "2099-12-31",
	}, "")
	require.Equal(t, http.StatusCreated, status, string(raw))
	guestID := decode(t, raw)["id"].(string)

	status, raw = call(t, app, http.MethodPost, "/api/consumptions", map[string]any{
		"room_id": roomID, "guest_id": guestID, "product_id": productID, "quantity": 4,
	}, "")
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, "10000", decode(t, raw)["total"])

	status, raw = call(t, app, http.MethodPost, "/api/consumptions", map[string]any{
		"room_id": roomID, "product_id": productID, "quantity": 20,
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	errBody := decode(t, raw)
	assert.Equal(t, apphttp.CodeInsufficientStock, errBody["code"])
	assert.Equal(t, "quantity", errBody["field"])

	status, raw = call(t, app, http.MethodGet, "/api/products/"+productID, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(6), decode(t, raw)["stock"])

	status, raw = call(t, app, http.MethodGet, "/api/consumptions/rooms", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"number":"101"`)

	status, raw = call(t, app, http.MethodGet, "/api/rooms/"+roomID+"/statement?format=json", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10000", decode(t, raw)["total"])

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+roomID+"/statement", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "estado_cuenta_101.pdf")
	pdfBytes, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestRouter_RejectsStockFieldOnProduct(t *testing.T) {
	app := newTestServer("")
	status, raw := call(t, app, http.MethodPost, "/api/products", `{"name":"Soda","unit_price":3000,"stock":5}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInvalidBody, decode(t, raw)["code"])
}

func TestRouter_ValidationAndNotFound(t *testing.T) {
	app := newTestServer("")

	status, raw := call(t, app, http.MethodPost, "/api/rooms", map[string]any{"number": "", "type": "pareja"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "number", decode(t, raw)["field"])

	status, _ = call(t, app, http.MethodGet, "/api/rooms/no-es-uuid", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodGet, "/api/guests/7f1d4c6e-2f0a-4c51-9a53-3b1b0b7b2d11", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_MalformedIDsAreFieldValidationErrors(t *testing.T) {
	app := newTestServer("")
	someID := "7f1d4c6e-2f0a-4c51-9a53-3b1b0b7b2d11"

	cases := []struct {
		method, path string
		body         any
		field        string
	}{
		{http.MethodPost, "/api/consumptions", map[string]any{"room_id": "x", "product_id": someID, "quantity": 1}, "room_id"},
		{http.MethodPost, "/api/consumptions", map[string]any{"room_id": someID, "guest_id": "g-1", "product_id": someID, "quantity": 1}, "guest_id"},
		{http.MethodPost, "/api/consumptions", map[string]any{"room_id": someID, "product_id": "agua", "quantity": 1}, "product_id"},
		{http.MethodPut, "/api/consumptions/" + someID, map[string]any{"product_id": "agua"}, "product_id"},
		{http.MethodGet, "/api/consumptions?room_id=101", nil, "room_id"},
		{http.MethodPost, "/api/guests", map[string]any{"name": "Ana", "room_id": "101", "check_out": "2099-12-31"}, "room_id"},
		{http.MethodPut, "/api/guests/" + someID, map[string]any{"room_id": "101"}, "room_id"},
		{http.MethodPost, "/api/products", map[string]any{"name": "Soda", "unit_price": 3000, "category_id": "bebidas"}, "category_id"},
		{http.MethodGet, "/api/products?category_id=bebidas", nil, "category_id"},
	}
	for _, tc := range cases {
		status, raw := call(t, app, tc.method, tc.path, tc.body, "")
		assert.Equal(t, http.StatusBadRequest, status, tc.method+" "+tc.path)
		body := decode(t, raw)
		assert.Equal(t, apphttp.CodeValidation, body["code"], tc.method+" "+tc.path)
		assert.Equal(t, tc.field, body["field"], tc.method+" "+tc.path)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	app := newTestServer("")

	status, raw := call(t, app, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", decode(t, raw)["status"])

	status, raw = call(t, app, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "hotel_http_requests_total")
}

func TestRouter_AdminOnlyDeletes(t *testing.T) {
	app := newTestServer(testJWTSecret)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)
	reception := tokenForRole(t, pkgjwt.RoleReceptionist)

	status, _ := call(t, app, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := call(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Bebidas"}, reception)
	require.Equal(t, http.StatusCreated, status, string(raw))
	categoryID := decode(t, raw)["id"].(string)

	status, _ = call(t, app, http.MethodDelete, "/api/categories/"+categoryID, nil, reception)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodDelete, "/api/categories/"+categoryID, nil, admin)
	assert.Equal(t, http.StatusNoContent, status)
}
