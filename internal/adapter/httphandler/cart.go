package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
	"github.com/threadline/storefront/internal/core/service"
)

// GET    /v1/cart        — items, total, item count
// POST   /v1/cart/items  — add, responds with added/updated outcome
// PUT    /v1/cart/items  — set line quantity (0 removes)
// DELETE /v1/cart/items  — remove one line (key in query params)
// DELETE /v1/cart        — clear

type CartHandler struct {
	finder port.ProductFinder
	cart   port.CartMutator
	reader port.CartReader
}

func RegisterCart(
	mux *http.ServeMux,
	finder port.ProductFinder,
	cart port.CartMutator,
	reader port.CartReader,
) {
	h := CartHandler{finder, cart, reader}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PUT /v1/cart/items", h.SetQuantity)
	mux.HandleFunc("DELETE /v1/cart/items", h.RemoveItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	// Total and count come from the one snapshot the lines came from,
	// so a concurrent mutation cannot skew the response internally.
	items := h.reader.Items()
	resp := CartResponse{
		Items: make([]CartLine, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		line := toWireCartLine(item)
		resp.Items = append(resp.Items, line)
		resp.Total = resp.Total.Add(line.Subtotal)
		resp.ItemCount += item.Quantity
	}

	writeJSON(w, http.StatusOK, resp, log)
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.finder.FindProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to look up product", http.StatusServiceUnavailable)
		log.Error("failed to find product", "err", err)
		return
	}

	outcome, err := h.cart.Add(r.Context(), p, req.Quantity, req.Size, req.Color)
	if err != nil {
		h.writeMutationError(w, log, err)
		return
	}

	resp := AddItemResponse{
		Outcome:   string(outcome),
		ItemCount: h.reader.ItemCount(),
	}
	writeJSON(w, http.StatusOK, resp, log)

	log.Info("cart mutated", "outcome", outcome, "productID", req.ProductID)
}

func (h CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetQuantity"
	log := slog.With("op", op)

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	key := domain.LineKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	if err := h.cart.SetQuantity(r.Context(), key, req.Quantity); err != nil {
		h.writeMutationError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	log := slog.With("op", op)

	key := domain.LineKey{
		ProductID: r.URL.Query().Get("product_id"),
		Size:      r.URL.Query().Get("size"),
		Color:     r.URL.Query().Get("color"),
	}
	if key.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	if err := h.cart.Remove(r.Context(), key); err != nil {
		h.writeMutationError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	log := slog.With("op", op)

	if err := h.cart.Clear(r.Context()); err != nil {
		h.writeMutationError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) writeMutationError(
	w http.ResponseWriter, log *slog.Logger, err error,
) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrSizeNotOffered),
		errors.Is(err, domain.ErrColorNotOffered):
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warn("rejected cart mutation", "err", err)
	default:
		http.Error(w, "failed to update cart", http.StatusServiceUnavailable)
		log.Error("failed to update cart", "err", err)
	}
}
