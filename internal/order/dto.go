package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
)

// Wire shapes for the remote order collaborator. The webhook speaks camelCase
// JSON with plain number prices, so prices cross the boundary as float64 and
// are converted back to decimals on the way in.

type productPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Featured    bool    `json:"featured,omitempty"`
}

type itemPayload struct {
	Product  productPayload `json:"product"`
	Quantity int            `json:"quantity"`
}

type customerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

type orderPayload struct {
	ID             string            `json:"id,omitempty"`
	Items          []itemPayload     `json:"items"`
	Customer       customerPayload   `json:"customer"`
	DeliveryMethod string            `json:"deliveryMethod"`
	PaymentMethod  string            `json:"paymentMethod"`
	Status         string            `json:"status,omitempty"`
	Total          float64           `json:"total"`
	CreatedAt      string            `json:"createdAt,omitempty"`
	Notes          string            `json:"notes,omitempty"`
}

type createResponse struct {
	Data struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"data"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func newOrderPayload(o Order) orderPayload {
	items := make([]itemPayload, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = itemPayload{
			Product:  newProductPayload(l.Product),
			Quantity: l.Quantity,
		}
	}
	return orderPayload{
		Items: items,
		Customer: customerPayload{
			Name:    o.Customer.Name,
			Phone:   o.Customer.Phone,
			Email:   o.Customer.Email,
			Address: o.Customer.Address,
		},
		DeliveryMethod: string(o.DeliveryMethod),
		PaymentMethod:  string(o.PaymentMethod),
		Status:         string(o.Status),
		Total:          o.Total.InexactFloat64(),
		CreatedAt:      o.CreatedAt.UTC().Format(time.RFC3339),
		Notes:          o.Notes,
	}
}

func newProductPayload(p catalog.Product) productPayload {
	return productPayload{
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

func mapPayloadToOrder(p orderPayload) Order {
	lines := make([]cart.Line, len(p.Items))
	for i, it := range p.Items {
		lines[i] = cart.Line{
			Product: catalog.Product{
				ID:          it.Product.ID,
				Name:        it.Product.Name,
				Description: it.Product.Description,
				Price:       decimal.NewFromFloat(it.Product.Price),
				ImageURL:    it.Product.ImageURL,
				Category:    it.Product.Category,
				Stock:       it.Product.Stock,
				Featured:    it.Product.Featured,
			},
			Quantity: it.Quantity,
		}
	}

	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)

	return Order{
		ID:             p.ID,
		Customer:       Customer(p.Customer),
		Lines:          lines,
		Total:          decimal.NewFromFloat(p.Total),
		DeliveryMethod: DeliveryMethod(p.DeliveryMethod),
		PaymentMethod:  PaymentMethod(p.PaymentMethod),
		Notes:          p.Notes,
		Status:         Status(p.Status),
		CreatedAt:      createdAt,
	}
}
