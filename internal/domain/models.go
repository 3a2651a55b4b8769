package domain

import "time"

// Money is a decimal amount tagged with its ISO currency code, kept as the
// string the upstream sent so no precision is lost.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// Variant represents a purchasable variant of a product
type Variant struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Price          Money             `json:"price"`
	CompareAtPrice *Money            `json:"compare_at_price,omitempty"`
	Available      bool              `json:"available"`
	SKU            *string           `json:"sku,omitempty"`
	Options        map[string]string `json:"options,omitempty"`
}

// Product is a read-only projection of an upstream product, fetched per
// request and never persisted.
type Product struct {
	ID                      string    `json:"id"`
	Title                   string    `json:"title"`
	Handle                  string    `json:"handle"`
	Description             string    `json:"description"`
	DescriptionHTML         string    `json:"description_html"`
	Price                   Money     `json:"price"`
	FormattedPrice          string    `json:"formatted_price"`
	CompareAtPrice          *Money    `json:"compare_at_price,omitempty"`
	FormattedCompareAtPrice string    `json:"formatted_compare_at_price,omitempty"`
	Available               bool      `json:"available"`
	Image                   string    `json:"image"`
	Images                  []string  `json:"images"`
	Variants                []Variant `json:"variants"`
	Tags                    []string  `json:"tags"`
	Vendor                  string    `json:"vendor"`
	ProductType             string    `json:"product_type"`
}

// CartItem is one line in a cart. Quantity is always >= 1; removing the last
// unit removes the item entirely.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart holds a shopper's items. The id is opaque and derived from the
// creation timestamp; carts never expire server-side.
type Cart struct {
	ID           string     `json:"id"`
	Items        []CartItem `json:"items"`
	Total        float64    `json:"total"`
	Notification string     `json:"notification,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RecomputeTotal refreshes Total from the current items.
func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.Total = total
}
