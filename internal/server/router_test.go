package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/config"
	"cafe-backend/internal/models"
	"cafe-backend/internal/store"
)

var now = time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)

type harness struct {
	app   *fiber.App
	st    *store.Store
	trail *audit.Trail
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithLogger(t, zap.NewNop())
}

func newHarnessWithLogger(t *testing.T, logger *zap.Logger) *harness {
	t.Helper()

	st := store.New(
		store.WithLocation(time.UTC),
		store.WithClock(func() time.Time { return now }),
		store.WithIDGenerator(&store.SequenceGenerator{}),
	)
	require.NoError(t, st.Seed(store.DemoData(now)))

	accounts := auth.NewAccounts()
	_, err := accounts.Register("Alice Johnson", "alice@cafe.test", "pw-manager", models.StaffRoleManager)
	require.NoError(t, err)
	_, err = accounts.Register("Bob Williams", "bob@cafe.test", "pw-cashier", models.StaffRoleCashier)
	require.NoError(t, err)

	trail := audit.NewTrail(func() time.Time { return now })
	cfg := &config.Config{
		JWTSecret:   "0123456789abcdef0123456789abcdef",
		CORSOrigins: "http://localhost:5173",
	}

	app := New(Deps{Config: cfg, Store: st, Accounts: accounts, Trail: trail, Logger: logger})
	return &harness{app: app, st: st, trail: trail}
}

func (h *harness) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	code, raw := h.call(t, method, path, token, body)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return code, out
}

func (h *harness) list(t *testing.T, path, token string) []map[string]any {
	t.Helper()

	code, raw := h.call(t, http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, code, string(raw))
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (h *harness) call(t *testing.T, method, path, token, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (h *harness) login(t *testing.T, email, password string) string {
	t.Helper()
	code, body := h.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, code, body)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func TestRouter_RequiresToken(t *testing.T) {
	h := newHarness(t)

	code, body := h.do(t, http.MethodGet, "/api/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.NotEmpty(t, body["error"])

	code, _ = h.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"alice@cafe.test","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_Checkout(t *testing.T) {
	h := newHarness(t)
	token := h.login(t, "bob@cafe.test", "pw-cashier")

	code, bill := h.do(t, http.MethodPost, "/api/orders", token,
		`{"items":[{"product_id":"prod1","quantity":2}],"payment_mode":"Cash","discount":"0"}`)
	require.Equal(t, http.StatusCreated, code, bill)
	assert.Equal(t, "43.2", bill["total"])
	assert.Equal(t, "ord-1", bill["order_id"])

	p, ok := h.st.Product("prod1")
	require.True(t, ok)
	assert.Equal(t, 98, p.Stock)

	logs := h.trail.List(audit.Filter{EntityType: "order"})
	require.Len(t, logs, 1)
	assert.Equal(t, "bob@cafe.test", logs[0].Actor)

	code, got := h.do(t, http.MethodGet, "/api/orders/ord-1", token, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "43.2", got["total"])
}

func TestRouter_CheckoutErrors(t *testing.T) {
	h := newHarness(t)
	token := h.login(t, "bob@cafe.test", "pw-cashier")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"insufficient stock", `{"items":[{"product_id":"prod6","quantity":11}],"payment_mode":"Card"}`, http.StatusConflict},
		{"unknown product", `{"items":[{"product_id":"ghost","quantity":1}],"payment_mode":"Card"}`, http.StatusBadRequest},
		{"empty cart", `{"items":[],"payment_mode":"Card"}`, http.StatusBadRequest},
		{"bad payment mode", `{"items":[{"product_id":"prod1","quantity":1}],"payment_mode":"Cheque"}`, http.StatusBadRequest},
		{"zero quantity", `{"items":[{"product_id":"prod1","quantity":0}],"payment_mode":"UPI"}`, http.StatusBadRequest},
		{"malformed", `{"items":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := h.do(t, http.MethodPost, "/api/orders", token, tt.body)
			assert.Equal(t, tt.want, code, body)
			assert.NotEmpty(t, body["error"])
		})
	}

	p, _ := h.st.Product("prod6")
	assert.Equal(t, 10, p.Stock)
	assert.Len(t, h.st.Snapshot().Orders, 3)
}

func TestRouter_ManagerOnly(t *testing.T) {
	h := newHarness(t)
	cashier := h.login(t, "bob@cafe.test", "pw-cashier")
	manager := h.login(t, "alice@cafe.test", "pw-manager")

	product := `{"name":"Filter Coffee","category":"Hot Coffee","price":"30","stock":40,"low_stock_threshold":5,"supplier_id":"sup1"}`

	code, _ := h.do(t, http.MethodPost, "/api/admin/products", cashier, product)
	assert.Equal(t, http.StatusForbidden, code)

	code, created := h.do(t, http.MethodPost, "/api/admin/products", manager, product)
	require.Equal(t, http.StatusCreated, code, created)
	assert.Equal(t, "Filter Coffee", created["name"])
	assert.Len(t, h.st.Snapshot().Products, 9)

	code, _ = h.do(t, http.MethodGet, "/api/admin/audit-logs", cashier, "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRouter_NotFound(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "alice@cafe.test", "pw-manager")

	code, body := h.do(t, http.MethodGet, "/api/orders/ord-404", manager, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, body["error"])

	code, _ = h.do(t, http.MethodDelete, "/api/admin/products/prod-404", manager, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = h.do(t, http.MethodDelete, "/api/admin/staff/staff-404", manager, "")
	assert.Equal(t, http.StatusNotFound, code)

	assert.Len(t, h.st.Snapshot().Products, 8)
	assert.Empty(t, h.trail.List(audit.Filter{}))
}

func TestRouter_Dashboard(t *testing.T) {
	h := newHarness(t)
	token := h.login(t, "bob@cafe.test", "pw-cashier")

	code, body := h.do(t, http.MethodGet, "/api/dashboard", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "91.8", body["today_sales"])
	assert.EqualValues(t, 8, body["total_products"])
	assert.Len(t, body["weekly_sales"], 7)

	best, ok := body["monthly_best_seller"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Masala Chai", best["name"])
}

func TestRouter_Attendance(t *testing.T) {
	h := newHarness(t)
	token := h.login(t, "alice@cafe.test", "pw-manager")

	body := `{"staff_id":"staff3","date":"2024-06-15","status":"Present"}`
	code, _ := h.do(t, http.MethodPost, "/api/attendance", token, body)
	require.Equal(t, http.StatusOK, code)
	code, _ = h.do(t, http.MethodPost, "/api/attendance", token, body)
	require.Equal(t, http.StatusOK, code)

	count := 0
	for _, a := range h.st.Snapshot().Attendance {
		if a.StaffID == "staff3" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	code, _ = h.do(t, http.MethodPost, "/api/attendance", token, `{"staff_id":"staff3","date":"2024-06-15","status":"Sick"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, statusFor(store.ErrNotFound))
	assert.Equal(t, fiber.StatusBadRequest, statusFor(store.ErrInvalidInput))
	assert.Equal(t, fiber.StatusConflict, statusFor(store.ErrInsufficientStock))
	assert.Equal(t, fiber.StatusTeapot, statusFor(fiber.NewError(fiber.StatusTeapot)))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(io.EOF))
}

func dec(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "expected a decimal string, got %T", v)
	return decimal.RequireFromString(s)
}

func TestRouter_UpdateProductMergesFields(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "alice@cafe.test", "pw-manager")

	code, _ := h.do(t, http.MethodPost, "/api/orders", manager,
		`{"items":[{"product_id":"prod1","quantity":5}],"payment_mode":"Cash"}`)
	require.Equal(t, http.StatusCreated, code)

	code, body := h.do(t, http.MethodPut, "/api/admin/products/prod1", manager, `{"price":"22"}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Masala Chai", body["name"])
	assert.Equal(t, "Hot Teas", body["category"])
	assert.EqualValues(t, 95, body["stock"])
	assert.EqualValues(t, 20, body["low_stock_threshold"])
	assert.Equal(t, "Fresh Teas Co.", body["supplier_name"])
	assert.True(t, decimal.NewFromInt(22).Equal(dec(t, body["price"])))

	p, ok := h.st.Product("prod1")
	require.True(t, ok)
	assert.Equal(t, 95, p.Stock)

	logs := h.trail.List(audit.Filter{EntityType: "product", EntityID: "prod1"})
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].BeforeData, `"stock":95`)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown supplier", "/api/admin/products/prod1", `{"supplier_id":"sup-ghost"}`, http.StatusBadRequest},
		{"negative stock", "/api/admin/products/prod1", `{"stock":-1}`, http.StatusBadRequest},
		{"missing product", "/api/admin/products/prod-404", `{"price":"1"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := h.do(t, http.MethodPut, tt.path, manager, tt.body)
			assert.Equal(t, tt.want, code, body)
		})
	}

	p, _ = h.st.Product("prod1")
	assert.Equal(t, "sup1", p.SupplierID)
	assert.Equal(t, 95, p.Stock)
}

func TestRouter_StaffJoinDate(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "alice@cafe.test", "pw-manager")

	code, created := h.do(t, http.MethodPost, "/api/admin/staff", manager,
		`{"name":"Evan Stone","role":"Waiter","shift":"Evening","salary":"15000"}`)
	require.Equal(t, http.StatusCreated, code, created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	s, ok := h.st.Staff(id)
	require.True(t, ok)
	assert.True(t, now.Equal(s.JoinDate), "join date %s", s.JoinDate)

	code, updated := h.do(t, http.MethodPut, "/api/admin/staff/"+id, manager,
		`{"name":"Evan Stone","role":"Chef","shift":"Morning","salary":"16000"}`)
	require.Equal(t, http.StatusOK, code, updated)
	assert.Equal(t, "Chef", updated["role"])

	s, _ = h.st.Staff(id)
	assert.True(t, now.Equal(s.JoinDate), "omitted join date must be kept, got %s", s.JoinDate)
	assert.True(t, decimal.NewFromInt(16000).Equal(s.Salary))

	code, _ = h.do(t, http.MethodPut, "/api/admin/staff/"+id, manager,
		`{"name":"Evan Stone","role":"Chef","shift":"Morning","salary":"16000","join_date":"2024-01-02T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, code)
	s, _ = h.st.Staff(id)
	assert.True(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC).Equal(s.JoinDate))

	code, _ = h.do(t, http.MethodPut, "/api/admin/staff/"+id, manager,
		`{"name":"Evan Stone","role":"Owner","shift":"Morning","salary":"16000"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = h.do(t, http.MethodPut, "/api/admin/staff/staff-404", manager,
		`{"name":"Nobody","role":"Chef","salary":"1"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = h.do(t, http.MethodPost, "/api/admin/staff", manager, `{"name":"","role":"Chef","salary":"1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_Payroll(t *testing.T) {
	h := newHarness(t)
	token := h.login(t, "bob@cafe.test", "pw-cashier")

	lines := h.list(t, "/api/staff/payroll", token)
	require.Len(t, lines, 4)

	want := map[string]string{"staff1": "3000", "staff2": "1800", "staff3": "0", "staff4": "0"}
	for _, l := range lines {
		id, _ := l["staff_id"].(string)
		w, ok := want[id]
		require.True(t, ok, "unexpected staff %s", id)
		assert.True(t, decimal.RequireFromString(w).Equal(dec(t, l["calculated_salary"])),
			"%s: got %v want %s", id, l["calculated_salary"], w)
	}
}

func TestRouter_FinancialSummary(t *testing.T) {
	h := newHarness(t)
	token := h.login(t, "bob@cafe.test", "pw-cashier")

	code, body := h.do(t, http.MethodGet, "/api/financial-summary", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decimal.RequireFromString("194.4").Equal(dec(t, body["total_revenue"])))
	assert.True(t, decimal.NewFromInt(32500).Equal(dec(t, body["total_expenses"])))
	assert.True(t, decimal.RequireFromString("-32305.6").Equal(dec(t, body["profit"])))
	assert.Len(t, body["recent_orders"], 3)
	assert.Len(t, body["recent_expenses"], 3)
}

func TestRouter_ProductFilters(t *testing.T) {
	h := newHarness(t)
	token := h.login(t, "bob@cafe.test", "pw-cashier")

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"all", "/api/products", []string{"prod1", "prod2", "prod3", "prod4", "prod5", "prod6", "prod7", "prod8"}},
		{"category", "/api/products?category=Snacks", []string{"prod5", "prod6"}},
		{"search", "/api/products?q=ICED", []string{"prod3", "prod4"}},
		{"category and search", "/api/products?category=Hot%20Teas&q=green", []string{"prod2"}},
		{"all keyword", "/api/products?category=All&q=unit", []string{"prod7", "prod8"}},
		{"low stock", "/api/products/low-stock", []string{"prod2", "prod4", "prod6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, p := range h.list(t, tt.path, token) {
				got = append(got, p["id"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}

	code, raw := h.call(t, http.MethodGet, "/api/products/categories", token, "")
	require.Equal(t, http.StatusOK, code)
	var categories []string
	require.NoError(t, json.Unmarshal(raw, &categories))
	assert.Equal(t, []string{"All", "Hot Teas", "Iced Teas", "Snacks", "Ingredients"}, categories)
}

func TestRouter_Accounts(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "alice@cafe.test", "pw-manager")
	cashier := h.login(t, "bob@cafe.test", "pw-cashier")

	account := `{"name":"Charlie Brown","email":"charlie@cafe.test","password":"pw-chef","role":"Chef"}`

	code, _ := h.do(t, http.MethodPost, "/api/admin/accounts", cashier, account)
	assert.Equal(t, http.StatusForbidden, code)

	code, created := h.do(t, http.MethodPost, "/api/admin/accounts", manager, account)
	require.Equal(t, http.StatusCreated, code, created)
	assert.Equal(t, "Chef", created["role"])
	assert.Nil(t, created["password_hash"])

	code, _ = h.do(t, http.MethodPost, "/api/admin/accounts", manager, account)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = h.do(t, http.MethodPost, "/api/admin/accounts", manager,
		`{"name":"X","email":"x@cafe.test","password":"pw","role":"Owner"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	emails := []string{}
	for _, a := range h.list(t, "/api/admin/accounts", manager) {
		emails = append(emails, a["email"].(string))
	}
	assert.Equal(t, []string{"alice@cafe.test", "bob@cafe.test", "charlie@cafe.test"}, emails)

	chef := h.login(t, "charlie@cafe.test", "pw-chef")
	code, me := h.do(t, http.MethodGet, "/api/auth/me", chef, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Charlie Brown", me["name"])
}

func TestRouter_Expenses(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "alice@cafe.test", "pw-manager")
	cashier := h.login(t, "bob@cafe.test", "pw-cashier")

	expense := `{"date":"2024-06-14","category":"Supplies","amount":"900","description":"Paper cups"}`

	code, _ := h.do(t, http.MethodPost, "/api/admin/expenses", cashier, expense)
	assert.Equal(t, http.StatusForbidden, code)

	code, created := h.do(t, http.MethodPost, "/api/admin/expenses", manager, expense)
	require.Equal(t, http.StatusCreated, code, created)

	code, body := h.do(t, http.MethodPost, "/api/admin/expenses", manager,
		`{"category":"Supplies","amount":"-5","description":"Refund"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["error"])

	ids := []string{}
	for _, e := range h.list(t, "/api/expenses?category=Supplies", cashier) {
		ids = append(ids, e["id"].(string))
	}
	assert.Equal(t, []string{created["id"].(string), "exp2"}, ids)
}

func TestRouter_UnexpectedErrorLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := newHarnessWithLogger(t, zap.New(core))
	h.app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("kaboom") })
	h.app.Get("/panic", func(c *fiber.Ctx) error { panic("kaboom") })

	for _, path := range []string{"/boom", "/panic"} {
		code, body := h.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "unexpected server error", body["error"])
	}

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 2)
	assert.Equal(t, "/boom", errs[0].ContextMap()["path"])
	assert.Equal(t, "/panic", errs[1].ContextMap()["path"])
}
