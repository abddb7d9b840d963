package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
	"github.com/jcmexdev/bakehouse-storefront/internal/order"
)

// OrderReader is the lookup side of the order collaborator, defined here
// because this package is its consumer.
type OrderReader interface {
	Get(ctx context.Context, id string) (order.Order, error)
	Status(ctx context.Context, id string) (order.Status, error)
}

// Handler serves the storefront API: product browsing, cart mutations,
// checkout, and order lookups.
type Handler struct {
	catalog  catalog.Source
	carts    *cart.Registry
	checkout *order.Checkout
	orders   OrderReader
}

func NewHandler(cat catalog.Source, carts *cart.Registry, checkout *order.Checkout, orders OrderReader) *Handler {
	return &Handler{
		catalog:  cat,
		carts:    carts,
		checkout: checkout,
		orders:   orders,
	}
}

// ListProducts serves the catalog. When the collaborator is unreachable the
// built-in sample set is served with a notice, so browsing keeps working.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "catalog unavailable, serving sample products", "error", err)
		writeJSON(w, http.StatusOK, productListResponse{
			Products: mapProducts(catalog.SampleProducts()),
			Notice:   "No se pudo cargar el catálogo; mostrando productos de muestra.",
		})
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{Products: mapProducts(products)})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.lookupProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.catalog.Stock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found", "")
			return
		}
		writeError(w, http.StatusBadGateway, "catalog_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stockResponse{Stock: stock})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, mapCart(store.State()))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	p, err := h.lookupProduct(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
		return
	}

	store := h.store(r)
	if err := store.AddItem(r.Context(), p, req.Quantity); err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(store.State()))
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	store := h.store(r)
	if err := store.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity); err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(store.State()))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, mapCart(store.State()))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, mapCart(store.State()))
}

// Checkout submits the session's cart as an order. On success the cart is
// already cleared by the submission flow and the server-assigned ID is
// returned for the confirmation view.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	delivery, err := order.ParseDeliveryMethod(req.DeliveryMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	payment, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	store := h.store(r)
	id, err := h.checkout.Submit(r.Context(), store, order.Customer(req.Customer), delivery, payment, req.Notes)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{ID: id, Status: string(order.StatusPending)})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", "")
			return
		}
		writeError(w, http.StatusBadGateway, "order_lookup_failed",
			"Error al cargar el pedido. Por favor, intente de nuevo.")
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (h *Handler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.orders.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", "")
			return
		}
		writeError(w, http.StatusBadGateway, "status_lookup_failed",
			"Error al verificar el estado del pedido. Por favor, intente de nuevo.")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: string(status)})
}

func (h *Handler) store(r *http.Request) *cart.Store {
	return h.carts.ForSession(r.Context(), sessionID(r.Context()))
}

// lookupProduct asks the catalog first and falls back to the built-in sample
// set when the collaborator is down, so the cart keeps working offline.
func (h *Handler) lookupProduct(ctx context.Context, id string) (catalog.Product, error) {
	p, err := h.catalog.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		if sample, ok := catalog.FindSample(id); ok {
			slog.WarnContext(ctx, "catalog unavailable, using sample product", "product_id", id, "error", err)
			return sample, nil
		}
	}
	return catalog.Product{}, err
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "invalid_quantity", "Cantidad no válida.")
	case errors.Is(err, cart.ErrStockExceeded):
		writeError(w, http.StatusConflict, "stock_exceeded", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
	}
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	var verr *order.ValidationError

	switch {
	case errors.Is(err, order.ErrEmptyCart):
		writeError(w, http.StatusConflict, "empty_cart", "No hay productos en el carrito.")
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation_failed",
			Fields: verr.Fields,
		})
	case errors.Is(err, order.ErrSystemBusy):
		writeError(w, http.StatusServiceUnavailable, "system_busy",
			"Sistema ocupado. Por favor, intente más tarde.")
	default:
		writeError(w, http.StatusBadGateway, "order_failed",
			"Error al crear el pedido. Por favor, intente de nuevo.")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{
		Error:   code,
		Message: msg,
	})
}
