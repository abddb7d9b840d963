package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(WithSession)

	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)
	r.Get("/products/{id}/stock", handler.GetStock)

	r.Get("/cart", handler.GetCart)
	r.Post("/cart/items", handler.AddItem)
	r.Patch("/cart/items/{id}", handler.UpdateQuantity)
	r.Delete("/cart/items/{id}", handler.RemoveItem)
	r.Delete("/cart", handler.ClearCart)

	r.Post("/checkout", handler.Checkout)

	r.Get("/orders/{id}", handler.GetOrder)
	r.Get("/orders/{id}/status", handler.GetOrderStatus)

	return r
}
