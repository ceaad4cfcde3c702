package remote

import (
	"context"
	"fmt"
	"net/http"
)

type StockClient struct{ c *Client }

func NewStockClient(c *Client) *StockClient { return &StockClient{c: c} }

type addStockRequest struct {
	OutletID  string `json:"sales_outlet_id"`
	ProductID string `json:"product_id"`
	Size      int    `json:"size"`
	Amount    int    `json:"amount"`
}

func (sc *StockClient) AddStockLine(ctx context.Context, outletID, productID string, size, amount int) error {
	body := addStockRequest{OutletID: outletID, ProductID: productID, Size: size, Amount: amount}
	return sc.c.do(ctx, http.MethodPost, "/api/v1/stock/add", body, nil)
}

func (sc *StockClient) UpdateStockAmount(ctx context.Context, outletID, productID string, size, amount int) error {
	path := fmt.Sprintf("/api/v1/stock/update/%s/%s/%d/%d", outletID, productID, amount, size)
	return sc.c.do(ctx, http.MethodPost, path, nil, nil)
}

func (sc *StockClient) DeleteStockLine(ctx context.Context, outletID, productID string, size int) error {
	path := fmt.Sprintf("/api/v1/stock/delete/%s/%s/%d", outletID, productID, size)
	return sc.c.do(ctx, http.MethodDelete, path, nil, nil)
}
