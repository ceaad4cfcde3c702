package remote

import (
	"context"
	"net/http"

	"github.com/luniksss/lunikiss-storefront/internal/catalog"
)

type CatalogClient struct{ c *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

func (cc *CatalogClient) ListOutlets(ctx context.Context) ([]catalog.Outlet, error) {
	var outlets []catalog.Outlet
	if err := cc.c.do(ctx, http.MethodGet, "/outlet/list", nil, &outlets); err != nil {
		return nil, err
	}
	return outlets, nil
}

func (cc *CatalogClient) ListStockByOutlet(ctx context.Context, outletID string) ([]catalog.StockEntry, error) {
	var entries []catalog.StockEntry
	if err := cc.c.do(ctx, http.MethodGet, "/products/outlet/"+outletID, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (cc *CatalogClient) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := cc.c.do(ctx, http.MethodGet, "/product/list", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (cc *CatalogClient) CreateProduct(ctx context.Context, p catalog.Product) error {
	return cc.c.do(ctx, http.MethodPost, "/api/v1/product/add", p, nil)
}

func (cc *CatalogClient) UpdateProduct(ctx context.Context, productID string, p catalog.Product) error {
	return cc.c.do(ctx, http.MethodPost, "/api/v1/product/update/"+productID, p, nil)
}

func (cc *CatalogClient) DeleteProduct(ctx context.Context, productID string) error {
	return cc.c.do(ctx, http.MethodDelete, "/api/v1/product/delete/"+productID, nil, nil)
}

// Outlet writes take the bare address string as their body; that is the
// payload the retail service decodes.

func (cc *CatalogClient) CreateOutlet(ctx context.Context, address string) error {
	return cc.c.do(ctx, http.MethodPost, "/api/v1/outlet/add", address, nil)
}

func (cc *CatalogClient) UpdateOutlet(ctx context.Context, outletID, address string) error {
	return cc.c.do(ctx, http.MethodPost, "/api/v1/outlet/update/"+outletID, address, nil)
}

func (cc *CatalogClient) DeleteOutlet(ctx context.Context, outletID string) error {
	return cc.c.do(ctx, http.MethodDelete, "/api/v1/outlet/delete/"+outletID, nil, nil)
}
