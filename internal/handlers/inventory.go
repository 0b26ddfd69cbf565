package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/service"
	"beverage-shop/internal/shop"
)

type InventoryHandler struct {
	service service.InventoryServiceInterface
	users   repository.Users
	log     *logger.Logger
}

func NewInventoryHandler(s service.InventoryServiceInterface, users repository.Users, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{service: s, users: users, log: log}
}

type createItemRequest struct {
	BeverageName string          `json:"beverage_name"`
	BeverageType string          `json:"beverage_type"`
	Caffeinated  bool            `json:"caffeinated"`
	Flavored     bool            `json:"flavored"`
	OnHand       int             `json:"on_hand"`
	Price        decimal.Decimal `json:"price"`
	WarnLimit    *int            `json:"warn_limit,omitempty"`
}

type updateItemChanges struct {
	BeverageName *string          `json:"beverage_name,omitempty"`
	BeverageType *string          `json:"beverage_type,omitempty"`
	Caffeinated  *bool            `json:"caffeinated,omitempty"`
	Flavored     *bool            `json:"flavored,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	WarnLimit    *int             `json:"warn_limit,omitempty"`
}

type deductRequest struct {
	Quantity int `json:"quantity"`
}

type inventoryResponse struct {
	ID           int64           `json:"id"`
	BeverageName string          `json:"beverage_name"`
	BeverageType string          `json:"beverage_type"`
	Caffeinated  bool            `json:"caffeinated"`
	Flavored     bool            `json:"flavored"`
	OnHand       int             `json:"on_hand"`
	Price        decimal.Decimal `json:"price"`
	WarnLimit    int             `json:"warn_limit"`
	State        string          `json:"state"`
	StateLabel   string          `json:"state_label"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toInventoryResponse(inv *shop.Inventory) inventoryResponse {
	return inventoryResponse{
		ID:           inv.ID,
		BeverageName: inv.BeverageName,
		BeverageType: string(inv.BeverageType),
		Caffeinated:  inv.Caffeinated,
		Flavored:     inv.Flavored,
		OnHand:       inv.OnHand,
		Price:        inv.Price,
		WarnLimit:    inv.WarnLimit,
		State:        string(inv.State()),
		StateLabel:   inv.StateLabel(),
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}

func (ih *InventoryHandler) actor(w http.ResponseWriter, r *http.Request) (*shop.User, bool) {
	u, err := currentUser(r, ih.users)
	if err != nil {
		if errors.Is(err, errUnknownUser) {
			writeProblem(w, http.StatusUnauthorized, "unknown_user", err.Error())
		} else {
			writeError(w, err)
		}
		return nil, false
	}
	return u, true
}

func (ih *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := ih.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]inventoryResponse, 0, len(items))
	for _, inv := range items {
		resp = append(resp, toInventoryResponse(inv))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": resp})
}

func (ih *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := ih.actor(w, r)
	if !ok {
		return
	}
	var req createItemRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	inv, err := ih.service.Create(r.Context(), actor, service.NewItem{
		BeverageName: req.BeverageName,
		BeverageType: shop.BeverageType(req.BeverageType),
		Caffeinated:  req.Caffeinated,
		Flavored:     req.Flavored,
		OnHand:       req.OnHand,
		Price:        req.Price,
		WarnLimit:    req.WarnLimit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInventoryResponse(inv))
}

func (ih *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "item id must be an integer")
		return
	}
	inv, err := ih.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponse(inv))
}

func (ih *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := ih.actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "item_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "item id must be an integer")
		return
	}
	var req updateItemChanges
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	ch := shop.InventoryChanges{
		BeverageName: req.BeverageName,
		Caffeinated:  req.Caffeinated,
		Flavored:     req.Flavored,
		Price:        req.Price,
		WarnLimit:    req.WarnLimit,
	}
	if req.BeverageType != nil {
		typ := shop.BeverageType(*req.BeverageType)
		ch.BeverageType = &typ
	}
	inv, err := ih.service.Update(r.Context(), actor, id, ch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryResponse(inv))
}

func (ih *InventoryHandler) Deduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := ih.actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "item_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "item id must be an integer")
		return
	}
	var req deductRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	remaining, err := ih.service.Deduct(r.Context(), actor, id, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_id": id, "on_hand": remaining})
}
