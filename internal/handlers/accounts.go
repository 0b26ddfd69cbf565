package handlers

import (
	"errors"
	"net/http"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/service"
	"beverage-shop/internal/shop"
)

type AccountHandler struct {
	service service.AccountServiceInterface
	users   repository.Users
	log     *logger.Logger
}

func NewAccountHandler(s service.AccountServiceInterface, users repository.Users, log *logger.Logger) *AccountHandler {
	return &AccountHandler{service: s, users: users, log: log}
}

type createCustomerRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	UserID      int64  `json:"user_id"`
}

type createEmployeeRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	UserID int64  `json:"user_id"`
}

type customerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	UserID      int64  `json:"user_id"`
}

type employeeResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	UserID int64  `json:"user_id"`
}

func toCustomerResponse(c *shop.Customer) customerResponse {
	resp := customerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
	}
	if c.User != nil {
		resp.UserID = c.User.ID
	}
	return resp
}

func toEmployeeResponse(e *shop.Employee) employeeResponse {
	resp := employeeResponse{
		ID:     e.ID,
		Name:   e.Name,
		Gender: string(e.Gender),
	}
	if e.User != nil {
		resp.UserID = e.User.ID
	}
	return resp
}

func (ah *AccountHandler) actor(w http.ResponseWriter, r *http.Request) (*shop.User, bool) {
	u, err := currentUser(r, ah.users)
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

func (ah *AccountHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	actor, ok := ah.actor(w, r)
	if !ok {
		return
	}
	var req createCustomerRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	c, err := ah.service.CreateCustomer(r.Context(), actor, service.NewCustomer{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		UserID:      req.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(c))
}

func (ah *AccountHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "customer_id")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_id", "customer id must be an integer")
		return
	}
	c, err := ah.service.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

func (ah *AccountHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := ah.actor(w, r)
	if !ok {
		return
	}
	var req createEmployeeRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	e, err := ah.service.CreateEmployee(r.Context(), actor, service.NewEmployee{
		Name:   req.Name,
		Gender: shop.Gender(req.Gender),
		UserID: req.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeResponse(e))
}
