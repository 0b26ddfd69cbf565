// Package handlers exposes the shop over HTTP. Identity is a header shim:
// the acting user comes from X-User-ID, authentication proper is out of
// scope for this service.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/service"
	"beverage-shop/internal/shop"
)

type Handler struct {
	OrderHandler     *OrderHandler
	InventoryHandler *InventoryHandler
	AccountHandler   *AccountHandler
}

func New(s *service.Service, users repository.Users, log *logger.Logger) *Handler {
	return &Handler{
		OrderHandler:     NewOrderHandler(s.Orders, users, log),
		InventoryHandler: NewInventoryHandler(s.Inventory, users, log),
		AccountHandler:   NewAccountHandler(s.Accounts, users, log),
	}
}

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/orders", h.OrderHandler.Create)
	mux.HandleFunc("GET /api/v1/orders/{order_id}", h.OrderHandler.Get)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/items", h.OrderHandler.AddItem)
	mux.HandleFunc("PATCH /api/v1/orders/{order_id}/items/{item_id}", h.OrderHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/v1/orders/{order_id}/items/{item_id}", h.OrderHandler.RemoveItem)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/submit", h.OrderHandler.Submit)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/approve", h.OrderHandler.Approve)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/reject", h.OrderHandler.Reject)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/cancel", h.OrderHandler.Cancel)

	mux.HandleFunc("GET /api/v1/inventory", h.InventoryHandler.List)
	mux.HandleFunc("POST /api/v1/inventory", h.InventoryHandler.Create)
	mux.HandleFunc("GET /api/v1/inventory/{item_id}", h.InventoryHandler.Get)
	mux.HandleFunc("PATCH /api/v1/inventory/{item_id}", h.InventoryHandler.Update)
	mux.HandleFunc("POST /api/v1/inventory/{item_id}/deduct", h.InventoryHandler.Deduct)

	mux.HandleFunc("POST /api/v1/customers", h.AccountHandler.CreateCustomer)
	mux.HandleFunc("GET /api/v1/customers/{customer_id}", h.AccountHandler.GetCustomer)
	mux.HandleFunc("POST /api/v1/employees", h.AccountHandler.CreateEmployee)

	return mux
}

// errUnknownUser is returned when X-User-ID names a user that does not exist.
var errUnknownUser = errors.New("unknown user in X-User-ID")

// currentUser resolves the acting user from the X-User-ID header. A missing
// header means an anonymous caller, which the domain accepts.
func currentUser(r *http.Request, users repository.Users) (*shop.User, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errUnknownUser
	}
	u, err := users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errUnknownUser
		}
		return nil, err
	}
	return u, nil
}
