//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Full sale cycle: login → add to cart → set quantity → checkout → list
//   - Bill deletion restores stock
//   - Duplicate cart add is rejected
//   - Price check endpoint round-trips through the Redis cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sareepos/internal/config"
	"sareepos/internal/infra"
	"sareepos/internal/router"

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
	token  string // founder JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("sareepos_test"),
		tcPostgres.WithUsername("sareepos"),
		tcPostgres.WithPassword("sareepos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
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
		StoreName:          "E2E Sarees",
		PDFStoragePath:     t.TempDir(),
	}

	// Connect DB (runs migrations) + Redis
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed founder profile
	hash, err := bcrypt.GenerateFromPassword([]byte("sareepos2026"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO profiles (id, email, name, password_hash, role, active, created_at)
		VALUES (gen_random_uuid(), 'founder@e2e.test', 'Founder E2E', ?, 'founder', true, NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, smtpCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Login as founder
	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "founder@e2e.test", "password": "sareepos2026"}),
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

func createProduct(t *testing.T, env *testEnv, name string, qty int, priceA float64) (id, sku string) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name":            name,
			"quantity":        qty,
			"selling_price_a": priceA,
			"cost_price":      priceA * 0.6,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID  string `json:"id"`
		SKU string `json:"sku"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID, prod.SKU
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullSaleCycle(t *testing.T) {
	env := setupTestEnv(t)

	prodID, sku := createProduct(t, env, "Kanchipuram Silk", 3, 500)

	// Add to cart (quantity starts at 1)
	addResp := do(t, env.server, "POST", "/v1/cart",
		jsonBody(t, map[string]string{"sku": sku}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	// Bump quantity to 2
	qtyResp := do(t, env.server, "PATCH", "/v1/cart/"+sku,
		jsonBody(t, map[string]int{"quantity": 2}), env.token)
	require.Equal(t, http.StatusOK, qtyResp.StatusCode)
	qtyResp.Body.Close()

	// Checkout: subtotal 1000 → cgst 25 + sgst 25 → total 1050
	checkoutResp := do(t, env.server, "POST", "/v1/bills/checkout",
		jsonBody(t, map[string]string{"payment_method": "cash"}), env.token)
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)
	var bill struct {
		ID          string `json:"id"`
		BillNumber  int    `json:"bill_number"`
		Subtotal    string `json:"subtotal"`
		CGST        string `json:"cgst"`
		SGST        string `json:"sgst"`
		TotalAmount string `json:"total_amount"`
	}
	decodeJSON(t, checkoutResp, &bill)
	assert.Equal(t, 1, bill.BillNumber)
	assert.Equal(t, "1000", bill.Subtotal)
	assert.Equal(t, "25", bill.CGST)
	assert.Equal(t, "25", bill.SGST)
	assert.Equal(t, "1050", bill.TotalAmount)

	// Stock decremented, still available
	prodResp := do(t, env.server, "GET", "/v1/products/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Quantity int    `json:"quantity"`
		Status   string `json:"status"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 1, prod.Quantity)
	assert.Equal(t, "available", prod.Status)

	// Today's bill list includes the sale
	listResp := do(t, env.server, "GET", fmt.Sprintf("/v1/bills?date=%s", time.Now().Format("2006-01-02")), nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.EqualValues(t, 1, list.Total)
}

func TestE2E_DeleteBillRestoresStock(t *testing.T) {
	env := setupTestEnv(t)

	prodID, sku := createProduct(t, env, "Banarasi Cotton", 5, 800)

	addResp := do(t, env.server, "POST", "/v1/cart",
		jsonBody(t, map[string]string{"sku": sku}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	qtyResp := do(t, env.server, "PATCH", "/v1/cart/"+sku,
		jsonBody(t, map[string]int{"quantity": 3}), env.token)
	require.Equal(t, http.StatusOK, qtyResp.StatusCode)
	qtyResp.Body.Close()

	checkoutResp := do(t, env.server, "POST", "/v1/bills/checkout",
		jsonBody(t, map[string]string{"payment_method": "upi"}), env.token)
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)
	var bill struct {
		ID string `json:"id"`
	}
	decodeJSON(t, checkoutResp, &bill)

	delResp := do(t, env.server, "DELETE", "/v1/bills/"+bill.ID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	// Stock restored to 5
	prodResp := do(t, env.server, "GET", "/v1/products/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Quantity int    `json:"quantity"`
		Status   string `json:"status"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 5, prod.Quantity)
	assert.Equal(t, "available", prod.Status)
}

func TestE2E_DuplicateCartAddRejected(t *testing.T) {
	env := setupTestEnv(t)

	_, sku := createProduct(t, env, "Tussar Silk", 2, 950)

	first := do(t, env.server, "POST", "/v1/cart",
		jsonBody(t, map[string]string{"sku": sku}), env.token)
	require.Equal(t, http.StatusOK, first.StatusCode)
	first.Body.Close()

	second := do(t, env.server, "POST", "/v1/cart",
		jsonBody(t, map[string]string{"sku": sku}), env.token)
	assert.Equal(t, http.StatusConflict, second.StatusCode)
	second.Body.Close()
}

func TestE2E_PriceCheck(t *testing.T) {
	env := setupTestEnv(t)

	_, sku := createProduct(t, env, "Chanderi", 4, 650)

	for i := 0; i < 2; i++ { // second hit comes from the Redis cache
		resp := do(t, env.server, "GET", "/v1/price/"+sku, nil, env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var price struct {
			SKU           string `json:"sku"`
			SellingPriceA string `json:"selling_price_a"`
			Quantity      int    `json:"quantity"`
		}
		decodeJSON(t, resp, &price)
		assert.Equal(t, sku, price.SKU)
		assert.Equal(t, "650", price.SellingPriceA)
		assert.Equal(t, 4, price.Quantity)
	}
}
