// Package catalog holds the read-mostly product and outlet types shared by
// the stock projection, the booking flow and the HTTP layer. JSON tags match
// the retail service's wire format.
package catalog

type Outlet struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type Image struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	ImagePath string `json:"image_path"`
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       Image   `json:"image"`
}

// StockEntry is one stock line as the retail service reports it: one
// product, one size, one outlet, with the product info embedded.
type StockEntry struct {
	OutletID string  `json:"sales_outlet_id"`
	Product  Product `json:"product"`
	Size     int     `json:"size"`
	Amount   int     `json:"amount"`
}

type SizeAvailability struct {
	Size      int  `json:"size"`
	Amount    int  `json:"amount"`
	Available bool `json:"available"`
}

// ProductAvailability is the derived per-outlet view of a product: its stock
// lines folded into per-size availability. Recomputed from the projection,
// never stored.
type ProductAvailability struct {
	Product    Product            `json:"product"`
	TotalStock int                `json:"total_stock"`
	Sizes      []SizeAvailability `json:"sizes"`
}
