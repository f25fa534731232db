//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tenaypos/internal/config"
	"tenaypos/internal/infra"
	"tenaypos/internal/model"
	"tenaypos/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("tenaypos_test"),
		tcPostgres.WithUsername("tenaypos"),
		tcPostgres.WithPassword("tenaypos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		PriceCacheSeconds:  60,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("tenay2026"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username:     "admin",
		Name:         "Admin E2E",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Permissions:  model.DefaultPermissions(model.RoleAdmin),
		IsActive:     true,
	}).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "tenay2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full shift: opening float → cash sales → summary → cut with zero difference.
func TestE2E_ShiftCloseBalances(t *testing.T) {
	env := setupTestEnv(t)

	// Opening float of 500
	movResp := do(t, env.server, "POST", "/v1/cashbox/movements",
		jsonBody(t, map[string]any{
			"type": "opening", "amount": 500, "description": "Fondo inicial del turno",
		}), env.token)
	require.Equal(t, http.StatusCreated, movResp.StatusCode)
	movResp.Body.Close()

	// Two cash sales: 120 + 80
	for _, total := range []float64{120, 80} {
		saleResp := do(t, env.server, "POST", "/v1/sales",
			jsonBody(t, map[string]any{
				"items":    []map[string]any{{"name": "Venta mostrador", "quantity": 1, "price": total}},
				"payments": []map[string]any{{"method": "efectivo", "amount": total}},
				"subtotal": total,
				"total":    total,
			}), env.token)
		require.Equal(t, http.StatusCreated, saleResp.StatusCode)
		saleResp.Body.Close()
	}

	// Live summary sees 700 theoretical
	sumResp := do(t, env.server, "GET", "/v1/cashbox/summary", nil, env.token)
	require.Equal(t, http.StatusOK, sumResp.StatusCode)
	var summary struct {
		TheoreticalCash string `json:"theoretical_cash"`
		SalesCount      int    `json:"sales_count"`
	}
	decodeJSON(t, sumResp, &summary)
	assert.Equal(t, "700", summary.TheoreticalCash)
	assert.Equal(t, 2, summary.SalesCount)

	// Close the shift counting exactly 700
	cutResp := do(t, env.server, "POST", "/v1/cashbox/cuts",
		jsonBody(t, map[string]any{"closing_amount": 700}), env.token)
	require.Equal(t, http.StatusCreated, cutResp.StatusCode)
	var cut struct {
		Folio        string `json:"folio"`
		ExpectedCash string `json:"expected_cash"`
		Difference   string `json:"difference"`
		SalesCount   int    `json:"sales_count"`
	}
	decodeJSON(t, cutResp, &cut)
	assert.Equal(t, "CC-000001", cut.Folio)
	assert.Equal(t, "700", cut.ExpectedCash)
	assert.Equal(t, "0", cut.Difference)
	assert.Equal(t, 2, cut.SalesCount)

	// An immediate second cut finds an empty window
	emptyResp := do(t, env.server, "POST", "/v1/cashbox/cuts",
		jsonBody(t, map[string]any{"closing_amount": 0}), env.token)
	assert.Equal(t, http.StatusBadRequest, emptyResp.StatusCode)
	emptyResp.Body.Close()
}

// Cancelling a sale restores stock and excludes it from the next cut.
func TestE2E_CancelSaleRestoresStock(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name": "Blusa manga larga", "sku": "BLU-001", "barcode": "7500000000011",
			"cost": 50, "price_retail": 100, "stock": 10,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"items":    []map[string]any{{"product_id": prod.ID, "name": "Blusa manga larga", "quantity": 3, "price": 100}},
			"payments": []map[string]any{{"method": "efectivo", "amount": 300}},
			"subtotal": 300,
			"total":    300,
		}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		ID    string `json:"id"`
		Folio string `json:"folio"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.Equal(t, "FA-000001", sale.Folio)

	cancelResp := do(t, env.server, "DELETE", "/v1/sales/"+sale.ID,
		jsonBody(t, map[string]any{"reason": "Error de captura en prueba"}), env.token)
	assert.Equal(t, http.StatusNoContent, cancelResp.StatusCode)
	cancelResp.Body.Close()

	prodDetail := do(t, env.server, "GET", "/v1/products/"+prod.ID, nil, env.token)
	require.Equal(t, http.StatusOK, prodDetail.StatusCode)
	var updated struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodDetail, &updated)
	assert.Equal(t, 10, updated.Stock)
}

// Barcode lookup hits the catalog once; the second read comes from Redis.
func TestE2E_BarcodePriceLookup(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name": "Perfume lavanda", "sku": "PER-001", "barcode": "7500000000028",
			"cost": 120, "price_retail": 250, "stock": 4,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	prodResp.Body.Close()

	for i := 0; i < 2; i++ {
		lookup := do(t, env.server, "GET", "/v1/products/barcode/7500000000028", nil, env.token)
		require.Equal(t, http.StatusOK, lookup.StatusCode)
		var price struct {
			Name        string `json:"name"`
			PriceRetail string `json:"price_retail"`
		}
		decodeJSON(t, lookup, &price)
		assert.Equal(t, "Perfume lavanda", price.Name)
		assert.Equal(t, "250", price.PriceRetail)
	}
}

// The storefront intake is the only unauthenticated write.
func TestE2E_PublicOrderIntake(t *testing.T) {
	env := setupTestEnv(t)

	orderResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{
			"customer_name":  "Luis Pérez",
			"customer_phone": "3312345678",
			"items": []map[string]any{
				{"name": "Labial mate", "quantity": 2, "price": 50},
			},
		}), "")
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		TotalApprox string `json:"total_approx"`
	}
	decodeJSON(t, orderResp, &order)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "100", order.TotalApprox)

	// Reading orders still requires auth
	listNoAuth := do(t, env.server, "GET", "/v1/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, listNoAuth.StatusCode)
	listNoAuth.Body.Close()

	listResp := do(t, env.server, "GET", "/v1/orders", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(1), list.Total)
}
