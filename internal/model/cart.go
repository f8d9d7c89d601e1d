package model

// CartLineItem is one cart entry: a snapshot of the product's display
// fields taken when it was first added, plus the selected quantity.
type CartLineItem struct {
	ID       ProductID `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Category string    `json:"category"`
	Image    string    `json:"image"`
	Quantity int       `json:"quantity"`
}

// NewCartLineItem builds a line item with quantity 1 from a product.
func NewCartLineItem(p Product) CartLineItem {
	return CartLineItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Category: p.Category,
		Image:    p.Image,
		Quantity: 1,
	}
}

// CartLine is a line item as rendered to clients, with its totals in both
// the base and the display currency.
type CartLine struct {
	CartLineItem
	LineTotal    float64 `json:"lineTotal"`
	DisplayPrice int64   `json:"displayPrice"`
	DisplayTotal int64   `json:"displayTotal"`
}

// CartSummary is the cart as rendered to clients.
type CartSummary struct {
	Items           []CartLine `json:"items"`
	ItemCount       int        `json:"itemCount"`
	Subtotal        float64    `json:"subtotal"`
	DisplaySubtotal int64      `json:"displaySubtotal"`
	Currency        string     `json:"currency"`
}
