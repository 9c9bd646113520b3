package model

// CartLine is one product entry in a shopping cart.
type CartLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// CartView is the read model returned to callers of the cart API.
type CartView struct {
	Items    []CartLine `json:"items"`
	Count    int        `json:"count"`
	Subtotal int64      `json:"subtotal"`
}
