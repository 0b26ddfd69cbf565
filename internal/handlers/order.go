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

type OrderHandler struct {
	service service.OrderServiceInterface
	users   repository.Users
	log     *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, users repository.Users, log *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, users: users, log: log}
}

type createOrderRequest struct {
	CustomerID int64 `json:"customer_id"`
}

type addItemRequest struct {
	ItemID    int64            `json:"item_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type updateItemRequest struct {
	Quantity  *int             `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type reviewRequest struct {
	Comments string `json:"comments"`
}

type orderItemResponse struct {
	ID         int64           `json:"id"`
	ItemID     int64           `json:"item_id"`
	Beverage   string          `json:"beverage_name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type orderResponse struct {
	ID         int64               `json:"id"`
	CustomerID int64               `json:"customer_id"`
	State      string              `json:"state"`
	StateLabel string              `json:"state_label"`
	HandlerID  *int64              `json:"handler_id,omitempty"`
	ReviewDate *time.Time          `json:"review_date,omitempty"`
	Comments   string              `json:"comments,omitempty"`
	Items      []orderItemResponse `json:"items"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func toOrderResponse(o *shop.Order) orderResponse {
	resp := orderResponse{
		ID:         o.ID,
		State:      string(o.State),
		StateLabel: o.StateLabel(),
		ReviewDate: o.ReviewDate,
		Comments:   o.Comments,
		Items:      make([]orderItemResponse, 0, len(o.Items)),
		TotalPrice: o.TotalPrice(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.CustomerID = o.Customer.ID
	}
	if o.Handler != nil {
		resp.HandlerID = &o.Handler.ID
	}
	for _, line := range o.Items {
		resp.Items = append(resp.Items, toOrderItemResponse(line))
	}
	return resp
}

func toOrderItemResponse(line *shop.OrderItem) orderItemResponse {
	resp := orderItemResponse{
		ID:         line.ID,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		TotalPrice: line.TotalPrice(),
	}
	if line.Item != nil {
		resp.ItemID = line.Item.ID
		resp.Beverage = line.Item.BeverageName
	}
	return resp
}

// actor resolves the acting user and writes the failure response itself.
func (oh *OrderHandler) actor(w http.ResponseWriter, r *http.Request) (*shop.User, bool) {
	u, err := currentUser(r, oh.users)
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

func (oh *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := oh.actor(w, r)
	if !ok {
		return
	}
	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	o, err := oh.service.Create(r.Context(), actor, req.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (oh *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "order id must be an integer")
		return
	}
	o, err := oh.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (oh *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := oh.actor(w, r)
	if !ok {
		return
	}
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "order id must be an integer")
		return
	}
	var req addItemRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	line, err := oh.service.AddItem(r.Context(), actor, orderID, req.ItemID, req.Quantity, req.UnitPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderItemResponse(line))
}

func (oh *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := oh.actor(w, r)
	if !ok {
		return
	}
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "order id must be an integer")
		return
	}
	itemID, err := pathID(r, "item_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "item id must be an integer")
		return
	}
	var req updateItemRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	ch := shop.OrderItemChanges{Quantity: req.Quantity, UnitPrice: req.UnitPrice}
	line, err := oh.service.UpdateItem(r.Context(), actor, orderID, itemID, ch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderItemResponse(line))
}

func (oh *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "order id must be an integer")
		return
	}
	itemID, err := pathID(r, "item_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "item id must be an integer")
		return
	}
	line, err := oh.service.RemoveItem(r.Context(), orderID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderItemResponse(line))
}

func (oh *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	oh.transition(w, r, func(actor *shop.User, orderID int64, _ string) (*shop.Order, error) {
		return oh.service.MarkReady(r.Context(), actor, orderID)
	})
}

func (oh *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	oh.transition(w, r, func(actor *shop.User, orderID int64, comments string) (*shop.Order, error) {
		return oh.service.Approve(r.Context(), actor, orderID, comments)
	})
}

func (oh *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	oh.transition(w, r, func(actor *shop.User, orderID int64, comments string) (*shop.Order, error) {
		return oh.service.Reject(r.Context(), actor, orderID, comments)
	})
}

func (oh *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	oh.transition(w, r, func(actor *shop.User, orderID int64, comments string) (*shop.Order, error) {
		return oh.service.Cancel(r.Context(), actor, orderID, comments)
	})
}

// transition is the shared shim for the four lifecycle endpoints: same
// request shape, same response shape, different service call.
func (oh *OrderHandler) transition(w http.ResponseWriter, r *http.Request,
	call func(actor *shop.User, orderID int64, comments string) (*shop.Order, error)) {

	actor, ok := oh.actor(w, r)
	if !ok {
		return
	}
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "order id must be an integer")
		return
	}
	var req reviewRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
			return
		}
	}
	o, err := call(actor, orderID, req.Comments)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
