package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/service"
	"beverage-shop/internal/shop"
	"beverage-shop/internal/validate"
)

type env struct {
	mux *http.ServeMux

	staff    *shop.User
	custUser *shop.User
	customer *shop.Customer
	item     *shop.Inventory
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory().Stores()

	e := &env{}
	e.staff = &shop.User{Username: "boss", Staff: true}
	require.NoError(t, repo.Users.Create(ctx, e.staff))
	e.custUser = &shop.User{Username: "jane"}
	require.NoError(t, repo.Users.Create(ctx, e.custUser))

	e.customer = shop.NewCustomer(e.custUser, "Jane", "12 Roast St", "555-0101", e.custUser)
	require.NoError(t, repo.Customers.Create(ctx, e.customer))
	employee := shop.NewEmployee(e.staff, "Bob", shop.GenderMale, e.staff)
	require.NoError(t, repo.Employees.Create(ctx, employee))

	e.item = shop.NewInventory(e.staff, "Latte", shop.BeverageCoffee, decimal.RequireFromString("10.00"))
	e.item.OnHand = 100
	require.NoError(t, repo.Inventories.Create(ctx, e.item))

	lg := logger.New("test")
	svc := service.New(repo, nil, validate.Config{}, lg)
	e.mux = Router(New(svc, repo.Users, lg))
	return e
}

func (e *env) do(t *testing.T, user *shop.User, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != nil {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", user.ID))
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *env) createOrder(t *testing.T) int64 {
	t.Helper()
	rec := e.do(t, e.custUser, http.MethodPost, "/api/v1/orders",
		fmt.Sprintf(`{"customer_id": %d}`, e.customer.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestCreateOrderEndpoint(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, e.custUser, http.MethodPost, "/api/v1/orders",
		fmt.Sprintf(`{"customer_id": %d}`, e.customer.ID))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "N", resp["state"])
	assert.Equal(t, "CREATED", resp["state_label"])
}

func TestUnknownUserHeader(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, &shop.User{ID: 999}, http.MethodPost, "/api/v1/orders", `{"customer_id": 1}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, nil, http.MethodGet, "/api/v1/orders/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemOutOfStock(t *testing.T) {
	e := newEnv(t)
	e.item.OnHand = 0
	orderID := e.createOrder(t)

	rec := e.do(t, e.custUser, http.MethodPost,
		fmt.Sprintf("/api/v1/orders/%d/items", orderID),
		fmt.Sprintf(`{"item_id": %d, "quantity": 1}`, e.item.ID))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "out_of_stock", resp["type"])
}

func TestAddItemDuplicateIsValidationError(t *testing.T) {
	e := newEnv(t)
	orderID := e.createOrder(t)
	body := fmt.Sprintf(`{"item_id": %d, "quantity": 1}`, e.item.ID)

	rec := e.do(t, e.custUser, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/items", orderID), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, e.custUser, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/items", orderID), body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Type   string              `json:"type"`
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Type)
	assert.Contains(t, resp.Errors, "item")
}

func TestSubmitEmptyOrderConflicts(t *testing.T) {
	e := newEnv(t)
	orderID := e.createOrder(t)

	rec := e.do(t, e.custUser, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/submit", orderID), "")

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order_empty", resp["type"])
}

func TestApproveFlow(t *testing.T) {
	e := newEnv(t)
	orderID := e.createOrder(t)

	rec := e.do(t, e.custUser, http.MethodPost,
		fmt.Sprintf("/api/v1/orders/%d/items", orderID),
		fmt.Sprintf(`{"item_id": %d, "quantity": 5}`, e.item.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, e.custUser, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/submit", orderID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	// A customer cannot review an order.
	rec = e.do(t, e.custUser, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/approve", orderID),
		`{"comments": "trying"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, e.staff, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/approve", orderID),
		`{"comments": "enjoy"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "A", resp["state"])
	assert.Equal(t, 95, e.item.OnHand)

	// Approved orders cannot be canceled.
	rec = e.do(t, e.custUser, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", orderID), "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "operation_forbidden", resp["type"])
}

func TestRejectWithoutComments(t *testing.T) {
	e := newEnv(t)
	orderID := e.createOrder(t)

	rec := e.do(t, e.custUser, http.MethodPost,
		fmt.Sprintf("/api/v1/orders/%d/items", orderID),
		fmt.Sprintf(`{"item_id": %d, "quantity": 1}`, e.item.ID))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = e.do(t, e.custUser, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/submit", orderID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, e.staff, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/reject", orderID), "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "comments")
}

func TestInventoryEndpoints(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, e.staff, http.MethodPost, "/api/v1/inventory",
		`{"beverage_name": "Earl Grey", "beverage_type": "T", "on_hand": 20, "price": "3.25"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "T", created["beverage_type"])
	assert.Equal(t, "AVAILABLE", created["state_label"])

	rec = e.do(t, nil, http.MethodGet, "/api/v1/inventory", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, e.staff, http.MethodPost,
		fmt.Sprintf("/api/v1/inventory/%d/deduct", e.item.ID), `{"quantity": 95}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var deducted map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deducted))
	assert.EqualValues(t, 5, deducted["on_hand"])

	rec = e.do(t, e.staff, http.MethodPost,
		fmt.Sprintf("/api/v1/inventory/%d/deduct", e.item.ID), `{"quantity": 6}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}
