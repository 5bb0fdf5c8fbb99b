package models

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// StoredCartItem est la forme persistée d'une ligne du panier (clé "cart").
type StoredCartItem struct {
	Reference string  `json:"reference_produit"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// CartSummary est une photo cohérente du panier et de ses valeurs dérivées.
type CartSummary struct {
	Items          []CartItem `json:"items"`
	Count          int        `json:"count"`
	Subtotal       float64    `json:"subtotal"`
	DiscountRate   float64    `json:"discount_rate"`
	DiscountAmount float64    `json:"discount_amount"`
	Total          float64    `json:"total"`
	IsEmpty        bool       `json:"is_empty"`
}
