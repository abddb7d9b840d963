package httpx

import (
	"time"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
	"github.com/jcmexdev/bakehouse-storefront/internal/order"
)

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Featured    bool    `json:"featured,omitempty"`
}

type productListResponse struct {
	Products []productResponse `json:"products"`
	// Notice is set when the catalog collaborator failed and the built-in
	// sample set is being served instead.
	Notice string `json:"notice,omitempty"`
}

type stockResponse struct {
	Stock int `json:"stock"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

type customerDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

type checkoutRequest struct {
	Customer       customerDTO `json:"customer"`
	DeliveryMethod string      `json:"delivery_method"`
	PaymentMethod  string      `json:"payment_method"`
	Notes          string      `json:"notes,omitempty"`
}

type checkoutResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type orderResponse struct {
	ID             string             `json:"id"`
	Items          []cartItemResponse `json:"items"`
	Customer       customerDTO        `json:"customer"`
	DeliveryMethod string             `json:"delivery_method"`
	PaymentMethod  string             `json:"payment_method"`
	Status         string             `json:"status"`
	Total          float64            `json:"total"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      string             `json:"created_at,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func mapProduct(p catalog.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Stock:       p.Stock,
		Featured:    p.Featured,
	}
}

func mapProducts(products []catalog.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = mapProduct(p)
	}
	return out
}

func mapCart(state cart.State) cartResponse {
	items := make([]cartItemResponse, len(state.Lines))
	for i, l := range state.Lines {
		items[i] = mapLine(l)
	}
	return cartResponse{Items: items, Total: state.Total.InexactFloat64()}
}

func mapLine(l cart.Line) cartItemResponse {
	return cartItemResponse{
		ProductID: l.Product.ID,
		Name:      l.Product.Name,
		UnitPrice: l.Product.Price.InexactFloat64(),
		Quantity:  l.Quantity,
		Subtotal:  l.Subtotal().InexactFloat64(),
		ImageURL:  l.Product.ImageURL,
	}
}

func mapOrder(o order.Order) orderResponse {
	items := make([]cartItemResponse, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = mapLine(l)
	}

	createdAt := ""
	if !o.CreatedAt.IsZero() {
		createdAt = o.CreatedAt.UTC().Format(time.RFC3339)
	}

	return orderResponse{
		ID:             o.ID,
		Items:          items,
		Customer:       customerDTO(o.Customer),
		DeliveryMethod: string(o.DeliveryMethod),
		PaymentMethod:  string(o.PaymentMethod),
		Status:         string(o.Status),
		Total:          o.Total.InexactFloat64(),
		Notes:          o.Notes,
		CreatedAt:      createdAt,
	}
}
