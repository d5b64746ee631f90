package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

type OrdersHandler struct {
	orders port.OrdersService
}

func RegisterOrders(mux *http.ServeMux, orders port.OrdersService) {
	h := OrdersHandler{orders}
	mux.HandleFunc("GET /orders", h.GetOrders)
	mux.HandleFunc("POST /orders", h.PostOrder)
	mux.HandleFunc("DELETE /orders", h.DeleteOrder)
}

// GetOrders serves three lookups from one route: a single order when
// both email and orderId are present, a customer's orders for email
// alone, and the full scan with no parameters.
func (h OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrders"
	log := slog.With("op", op)

	email := r.URL.Query().Get("email")
	orderID := r.URL.Query().Get("orderId")

	switch {
	case email != "" && orderID != "":
		order, err := h.orders.GetOrder(r.Context(), email, orderID)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to get order", http.StatusInternalServerError)
			log.Error("failed to get order", "err", err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(order))

	case email != "":
		orders, err := h.orders.CustomerOrders(r.Context(), email)
		if err != nil {
			http.Error(
				w, "failed to list orders", http.StatusInternalServerError,
			)
			log.Error("failed to list customer orders", "err", err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponses(orders))

	case orderID != "":
		writeBadRequest(w)

	default:
		orders, err := h.orders.AllOrders(r.Context())
		if err != nil {
			http.Error(
				w, "failed to list orders", http.StatusInternalServerError,
			)
			log.Error("failed to list orders", "err", err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponses(orders))
	}
}

func (h OrdersHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostOrder"
	log := slog.With("op", op)

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), toDomainOrderRequest(req))
	if err != nil {
		if errors.Is(err, domain.ErrProductsNotFound) {
			http.Error(w, "Some product was not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to create order", http.StatusInternalServerError)
		log.Error("failed to create order", "err", err)
		return
	}

	log.Info("order created",
		"email", order.CustomerEmail, "orderId", order.OrderID)
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h OrdersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.DeleteOrder"
	log := slog.With("op", op)

	email := r.URL.Query().Get("email")
	orderID := r.URL.Query().Get("orderId")
	if email == "" || orderID == "" {
		writeBadRequest(w)
		return
	}

	order, err := h.orders.DeleteOrder(r.Context(), email, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete order", http.StatusInternalServerError)
		log.Error("failed to delete order", "err", err)
		return
	}

	log.Info("order deleted", "email", email, "orderId", orderID)
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}
