package clients

import (
	"context"
	"net/url"
)

const (
	pathInsertOrders = "/InsertOrders"
	pathUpdateOrders = "/UpdateOrders"
	pathShowOrders   = "/ShowOrders"
	pathDeleteOrders = "/DeleteOrders"
	pathAssignLeads  = "/AssignLeads"
	pathShowVendor   = "/ShowVendor"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

func (oc *OrderClient) InsertOrders(ctx context.Context, form url.Values) ([]byte, error) {
	return oc.c.PostForm(ctx, pathInsertOrders, form)
}

func (oc *OrderClient) UpdateOrders(ctx context.Context, form url.Values) ([]byte, error) {
	return oc.c.PostForm(ctx, pathUpdateOrders, form)
}

func (oc *OrderClient) ShowOrders(ctx context.Context, form url.Values) ([]byte, error) {
	return oc.c.PostForm(ctx, pathShowOrders, form)
}

func (oc *OrderClient) DeleteOrders(ctx context.Context, form url.Values) ([]byte, error) {
	return oc.c.PostForm(ctx, pathDeleteOrders, form)
}

type LeadsClient struct{ c *Client }

func NewLeadsClient(c *Client) *LeadsClient { return &LeadsClient{c: c} }

func (lc *LeadsClient) AssignLeads(ctx context.Context, form url.Values) ([]byte, error) {
	return lc.c.PostForm(ctx, pathAssignLeads, form)
}

type VendorClient struct{ c *Client }

func NewVendorClient(c *Client) *VendorClient { return &VendorClient{c: c} }

func (vc *VendorClient) ShowVendor(ctx context.Context, form url.Values) ([]byte, error) {
	return vc.c.PostForm(ctx, pathShowVendor, form)
}
