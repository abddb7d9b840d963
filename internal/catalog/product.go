// Package catalog holds the read-only product reference data and the client
// that fetches it from the remote catalog collaborator.
package catalog

import "github.com/shopspring/decimal"

// Product is immutable reference data from the client's point of view.
// The JSON tags match the wire format the remote collaborator speaks.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured,omitempty"`
}

// SampleProducts is the built-in product set served when the catalog
// collaborator is unreachable, so the storefront stays browsable offline.
func SampleProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Pan Artesanal de Masa Madre",
			Description: "Pan de masa madre con fermentación lenta por 24 horas, corteza crujiente y miga alveolada.",
			Price:       decimal.NewFromFloat(6.50),
			ImageURL:    "https://images.pexels.com/photos/2286776/pexels-photo-2286776.jpeg",
			Category:    "panes",
			Stock:       20,
			Featured:    true,
		},
		{
			ID:          "2",
			Name:        "Croissant Tradicional",
			Description: "Croissant tradicional francés hecho con mantequilla de primera calidad, hojaldre perfecto.",
			Price:       decimal.NewFromFloat(3.25),
			ImageURL:    "https://images.pexels.com/photos/3892469/pexels-photo-3892469.jpeg",
			Category:    "bollería",
			Stock:       15,
			Featured:    true,
		},
		{
			ID:          "3",
			Name:        "Baguette Francesa",
			Description: "Baguette tradicional francesa con corteza crujiente y miga tierna y alveolada.",
			Price:       decimal.NewFromFloat(4.75),
			ImageURL:    "https://images.pexels.com/photos/1387075/pexels-photo-1387075.jpeg",
			Category:    "panes",
			Stock:       10,
		},
		{
			ID:          "4",
			Name:        "Cookies de Chocolate",
			Description: "Cookies con trozos de chocolate belga y nueces, horneadas diariamente.",
			Price:       decimal.NewFromFloat(2.50),
			ImageURL:    "https://images.pexels.com/photos/5386641/pexels-photo-5386641.jpeg",
			Category:    "dulces",
			Stock:       25,
		},
		{
			ID:          "5",
			Name:        "Tarta de Manzana",
			Description: "Tarta de manzana casera con canela y masa quebrada, perfecta para el postre.",
			Price:       decimal.NewFromFloat(18.90),
			ImageURL:    "https://images.pexels.com/photos/6341608/pexels-photo-6341608.jpeg",
			Category:    "tartas",
			Stock:       8,
			Featured:    true,
		},
		{
			ID:          "6",
			Name:        "Pan de Centeno",
			Description: "Pan de centeno tradicional, perfecto para acompañar quesos y embutidos.",
			Price:       decimal.NewFromFloat(5.25),
			ImageURL:    "https://images.pexels.com/photos/137103/pexels-photo-137103.jpeg",
			Category:    "panes",
			Stock:       12,
		},
	}
}

// FindSample looks up a product in the built-in set by ID.
func FindSample(id string) (Product, bool) {
	for _, p := range SampleProducts() {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
