package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"examplar-api/internal/config"
	"examplar-api/internal/domain/product"
	"examplar-api/internal/domain/user"
	"examplar-api/pkg/password"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestOption func(*http.Request)

func withAPIKey(key string) requestOption {
	return func(r *http.Request) { r.Header.Set("X-API-Key", key) }
}

func withBasic(username, pass string) requestOption {
	return func(r *http.Request) { r.SetBasicAuth(username, pass) }
}

func withJSON() requestOption {
	return func(r *http.Request) { r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON) }
}

func newTestHandler(t *testing.T, env map[string]string) http.Handler {
	t.Helper()
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	svc, err := Initialize(cfg, logger)
	require.NoError(t, err)
	return svc.Handler()
}

func do(h http.Handler, method, target, body string, opts ...requestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProducts_ListWithAPIKey(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, key := range []string{"key1", "key2"} {
		rec := do(h, http.MethodGet, "/api/products", "", withAPIKey(key))
		require.Equal(t, http.StatusOK, rec.Code, key)

		var products []product.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		assert.Equal(t, product.Seed(), products)
	}
}

func TestProducts_ListRejectsMissingOrUnknownKey(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name string
		opts []requestOption
	}{
		{"no key", nil},
		{"unknown key", []requestOption{withAPIKey("key3")}},
		{"basic credentials only", []requestOption{withBasic("admin", "adminpass")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodGet, "/api/products", "", tt.opts...)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
		})
	}
}

func TestProducts_GetByIDIsPublic(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodGet, "/api/products/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"name":"Smartphone","price":499.99}`, rec.Body.String())
}

func TestProducts_GetUnknownIDIs404(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodGet, "/api/products/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "product not found", body["error"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), body["request_id"])
}

func TestProducts_GetMalformedIDIs400(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts_CreateRequiresAdmin(t *testing.T) {
	h := newTestHandler(t, nil)
	body := `{"name":"Tablet","price":299.5}`

	rec := do(h, http.MethodPost, "/api/products", body, withJSON())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="examplar"`, rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = do(h, http.MethodPost, "/api/products", body, withJSON(), withBasic("user", "userpass"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, http.MethodPost, "/api/products", body, withJSON(), withAPIKey("key1"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodPost, "/api/products", body, withJSON(), withBasic("admin", "adminpass"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"name":"Tablet","price":299.5}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/products/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProducts_CreateIgnoresClientID(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodPost, "/api/products", `{"id":42,"name":"Mouse","price":9.99,"color":"black"}`,
		withJSON(), withBasic("admin", "adminpass"))
	require.Equal(t, http.StatusOK, rec.Code)

	var created product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(3), created.ID)
}

func TestCreate_RejectsBadBodies(t *testing.T) {
	h := newTestHandler(t, nil)
	admin := withBasic("admin", "adminpass")

	rec := do(h, http.MethodPost, "/api/users", `{"username":"bob"}`, admin)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = do(h, http.MethodPost, "/api/users", `{"username":`, admin, withJSON())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/api/users", `{"username":"a"}{"username":"b"}`, admin, withJSON())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// rejected bodies must not consume ids
	rec = do(h, http.MethodPost, "/api/users", `{"username":"bob","email":"bob@example.com"}`, admin, withJSON())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"username":"bob","email":"bob@example.com"}`, rec.Body.String())
}

func TestUsers_RoleEnforcement(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		opts   []requestOption
		code   int
	}{
		{"admin lists users", http.MethodGet, "/api/users", "", []requestOption{withBasic("admin", "adminpass")}, http.StatusOK},
		{"user cannot list users", http.MethodGet, "/api/users", "", []requestOption{withBasic("user", "userpass")}, http.StatusForbidden},
		{"anonymous cannot list users", http.MethodGet, "/api/users", "", nil, http.StatusUnauthorized},
		{"wrong password", http.MethodGet, "/api/users", "", []requestOption{withBasic("admin", "nope")}, http.StatusUnauthorized},
		{"unknown account", http.MethodGet, "/api/users", "", []requestOption{withBasic("mallory", "adminpass")}, http.StatusUnauthorized},
		{"api key cannot list users", http.MethodGet, "/api/users", "", []requestOption{withAPIKey("key1")}, http.StatusUnauthorized},
		{"user reads a user", http.MethodGet, "/api/users/1", "", []requestOption{withBasic("user", "userpass")}, http.StatusOK},
		{"admin reads a user", http.MethodGet, "/api/users/2", "", []requestOption{withBasic("admin", "adminpass")}, http.StatusOK},
		{"anonymous cannot read a user", http.MethodGet, "/api/users/1", "", nil, http.StatusUnauthorized},
		{"missing user", http.MethodGet, "/api/users/99", "", []requestOption{withBasic("user", "userpass")}, http.StatusNotFound},
		{"user cannot create", http.MethodPost, "/api/users", `{"username":"eve","email":"eve@example.com"}`, []requestOption{withBasic("user", "userpass"), withJSON()}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, tt.method, tt.target, tt.body, tt.opts...)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestUsers_ListAndGetPayloads(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodGet, "/api/users", "", withBasic("admin", "adminpass"))
	require.Equal(t, http.StatusOK, rec.Code)
	var users []user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Equal(t, user.Seed(), users)

	rec = do(h, http.MethodGet, "/api/users/1", "", withBasic("user", "userpass"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"john","email":"john@example.com"}`, rec.Body.String())
}

func TestUsers_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	h := newTestHandler(t, nil)
	const n = 20

	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := do(h, http.MethodPost, "/api/users", `{"username":"u","email":"u@example.com"}`,
				withJSON(), withBasic("admin", "adminpass"))
			var created user.User
			if rec.Code == http.StatusOK && json.Unmarshal(rec.Body.Bytes(), &created) == nil {
				ids <- created.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	for id := int64(3); id < 3+n; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

func TestUnknownRoute_RequiresAuthentication(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodGet, "/api/orders", "", withBasic("user", "userpass"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetrics_DisabledByDefault(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_CountsAuthDecisions(t *testing.T) {
	h := newTestHandler(t, map[string]string{"METRICS_ENABLED": "true"})

	do(h, http.MethodGet, "/api/products", "", withAPIKey("key1"))
	do(h, http.MethodGet, "/api/users", "", withBasic("user", "userpass"))

	rec := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `examplar_auth_decisions_total{action="authenticate",outcome="success",scheme="api_key"} 1`)
	assert.Contains(t, body, `examplar_auth_decisions_total{action="authenticate",outcome="success",scheme="basic"} 1`)
	assert.Contains(t, body, `examplar_auth_decisions_total{action="authorize",outcome="denied",scheme="basic"} 1`)
	assert.Contains(t, body, `examplar_http_requests_total{method="GET",route="/api/users",status="403"} 1`)
}

func TestInitialize_RejectsUnknownRole(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("AUTH_USERS", "ops:secret:SUPERUSER")

	cfg, err := config.Load()
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	_, err = Initialize(cfg, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPERUSER")
}

func TestInitialize_AcceptsHashedSecret(t *testing.T) {
	hash, err := password.HashWithCost("opspass", password.MinCost)
	require.NoError(t, err)

	h := newTestHandler(t, map[string]string{
		"AUTH_USERS": "ops:" + hash + ":ADMIN,user:userpass:USER",
	})

	rec := do(h, http.MethodGet, "/api/users", "", withBasic("ops", "opspass"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/users", "", withBasic("ops", hash))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit_RejectionUsesErrorBody(t *testing.T) {
	h := newTestHandler(t, map[string]string{
		"RATE_LIMIT_ENABLED": "true",
		"RATE_LIMIT_RPS":     "0.001",
		"RATE_LIMIT_BURST":   "1",
	})

	rec := do(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate limit exceeded", body["error"])
	assert.NotEmpty(t, body["request_id"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), body["request_id"])
}

func TestInitialize_WarnsOnWeakConfiguredHash(t *testing.T) {
	hash, err := password.HashWithCost("opspass", password.MinCost)
	require.NoError(t, err)

	t.Setenv("AUTH_BCRYPT_COST", "5")
	t.Setenv("AUTH_USERS", "ops:"+hash+":ADMIN")

	cfg, err := config.Load()
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	_, err = Initialize(cfg, logger)
	require.NoError(t, err)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel && entry.Data["username"] == "ops" {
			warned = true
		}
	}
	assert.True(t, warned)
}
