package remote

import (
	"context"
	"net/http"

	"github.com/luniksss/lunikiss-storefront/internal/orders"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// CreateOrder submits a draft and returns the created order id when the
// retail service reports one.
func (oc *OrderClient) CreateOrder(ctx context.Context, draft orders.Draft) (string, error) {
	var resp struct {
		ID      string `json:"id"`
		OrderID string `json:"order_id"`
	}
	if err := oc.c.do(ctx, http.MethodPost, "/api/v1/order", draft, &resp); err != nil {
		return "", err
	}
	if resp.ID != "" {
		return resp.ID, nil
	}
	return resp.OrderID, nil
}

func (oc *OrderClient) GetOrderItems(ctx context.Context, orderID string) ([]orders.Item, error) {
	var items []orders.Item
	if err := oc.c.do(ctx, http.MethodGet, "/api/v1/orders/"+orderID, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (oc *OrderClient) ListUserOrders(ctx context.Context, userID string) ([]orders.Order, error) {
	var list []orders.Order
	if err := oc.c.do(ctx, http.MethodGet, "/api/v1/users/"+userID+"/orders", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (oc *OrderClient) ListOrders(ctx context.Context) ([]orders.Order, error) {
	var list []orders.Order
	if err := oc.c.do(ctx, http.MethodGet, "/api/v1/orders/list", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (oc *OrderClient) DeleteOrderItem(ctx context.Context, itemID string) error {
	return oc.c.do(ctx, http.MethodDelete, "/api/v1/order-items/"+itemID, nil, nil)
}

func (oc *OrderClient) DeleteOrder(ctx context.Context, orderID string) error {
	return oc.c.do(ctx, http.MethodDelete, "/api/v1/order/"+orderID, nil, nil)
}

func (oc *OrderClient) UpdateOrderStatus(ctx context.Context, orderID string, status orders.Status) error {
	body := map[string]string{"status": string(status)}
	return oc.c.do(ctx, http.MethodPatch, "/api/v1/order/"+orderID+"/status", body, nil)
}
