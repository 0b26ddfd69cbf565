package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"beverage-shop/internal/repository"
	"beverage-shop/internal/service"
	"beverage-shop/internal/shop"
	"beverage-shop/internal/validate"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// writeError maps domain failures onto HTTP responses. Validation failures
// come back as a field-keyed map, policy violations as 405/409 problems and
// everything unrecognized as a 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		verrs     validate.Errors
		forbidden *shop.OperationForbiddenError
		oos       *shop.OutOfStockError
		short     *shop.NotEnoughStockError
		empty     *shop.OrderEmptyError
		notInList *shop.ItemNotInOrderError
	)
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"type":   "validation_error",
			"title":  http.StatusText(http.StatusBadRequest),
			"status": http.StatusBadRequest,
			"errors": verrs,
		})
	case errors.Is(err, shop.ErrNegativeQuantity):
		writeProblem(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.As(err, &forbidden):
		writeProblem(w, http.StatusMethodNotAllowed, "operation_forbidden", err.Error())
	case errors.As(err, &oos):
		writeProblem(w, http.StatusConflict, "out_of_stock", err.Error())
	case errors.As(err, &short):
		writeProblem(w, http.StatusConflict, "not_enough_stock", err.Error())
	case errors.As(err, &empty):
		writeProblem(w, http.StatusConflict, "order_empty", err.Error())
	case errors.As(err, &notInList):
		writeProblem(w, http.StatusConflict, "item_not_in_order", err.Error())
	case errors.Is(err, service.ErrNotEmployee):
		writeProblem(w, http.StatusForbidden, "not_an_employee", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func param(r *http.Request, key string) string { return r.PathValue(key) }

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(param(r, key), 10, 64)
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
