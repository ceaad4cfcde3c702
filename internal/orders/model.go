package orders

import "time"

// Order mirrors the retail service's order record.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	OutletID  string    `json:"sales_outlet_id"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status_name"`
}

type Item struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"order_id"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name,omitempty"`
	ProductImage string  `json:"product_image,omitempty"`
	Amount       int     `json:"amount"`
	Price        float64 `json:"price"`
	Size         int     `json:"size"`
}

// Draft is the order-creation request. Field names on the wire match what
// the retail service decodes.
type Draft struct {
	UserID   string      `json:"UserID"`
	OutletID string      `json:"SalesOutletID"`
	Items    []DraftItem `json:"OrderItems"`
}

type DraftItem struct {
	ProductID string  `json:"ProductID"`
	Amount    int     `json:"Amount"`
	Price     float64 `json:"Price"`
	Size      int     `json:"Size"`
}
