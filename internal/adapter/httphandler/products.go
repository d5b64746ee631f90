package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

const actorEmailHeader = "X-User-Email"

type ProductsHandler struct {
	catalog port.CatalogService
}

func RegisterProducts(mux *http.ServeMux, catalog port.CatalogService) {
	h := ProductsHandler{catalog}
	mux.HandleFunc("GET /products", h.GetProducts)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc("POST /products", h.PostProduct)
	mux.HandleFunc("PUT /products/{id}", h.PutProduct)
	mux.HandleFunc("DELETE /products/{id}", h.DeleteProduct)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		log.Error("failed to list products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to get product", http.StatusInternalServerError)
		log.Error("failed to get product", "id", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(p))
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if p.Name == "" || p.Code == "" {
		http.Error(
			w, "productName and code are required", http.StatusBadRequest,
		)
		return
	}

	actor := h.actor(r)
	created, err := h.catalog.CreateProduct(
		r.Context(), toDomainProduct(p), actor,
	)
	if err != nil {
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		log.Error("failed to create product", "err", err)
		return
	}

	log.Info("product created",
		"id", created.ID, "requestId", actor.RequestID)
	writeJSON(w, http.StatusCreated, toProduct(created))
}

func (h ProductsHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PutProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	actor := h.actor(r)
	updated, err := h.catalog.UpdateProduct(
		r.Context(), id, toDomainProduct(p), actor,
	)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		log.Error("failed to update product", "id", id, "err", err)
		return
	}

	log.Info("product updated", "id", id, "requestId", actor.RequestID)
	writeJSON(w, http.StatusOK, toProduct(updated))
}

func (h ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")

	actor := h.actor(r)
	deleted, err := h.catalog.DeleteProduct(r.Context(), id, actor)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		log.Error("failed to delete product", "id", id, "err", err)
		return
	}

	log.Info("product deleted", "id", id, "requestId", actor.RequestID)
	writeJSON(w, http.StatusOK, toProduct(deleted))
}

func (h ProductsHandler) actor(r *http.Request) domain.Actor {
	return domain.Actor{
		Email:     r.Header.Get(actorEmailHeader),
		RequestID: uuid.NewString(),
	}
}
