package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/tochka-go/internal/domain"
)

// GetCustomersList lists the customers the token can act for.
func (c *Client) GetCustomersList(ctx context.Context) (*domain.PaginatedResponse[domain.CustomerPageData], error) {
	return call[domain.PaginatedResponse[domain.CustomerPageData]](ctx, c, "GetCustomersList",
		http.MethodGet, ServiceOpenBanking, "customers", nil, nil)
}

// GetCustomerInfo returns one customer by customer code.
func (c *Client) GetCustomerInfo(ctx context.Context, customerCode string) (*domain.Data[domain.Customer], error) {
	return call[domain.Data[domain.Customer]](ctx, c, "GetCustomerInfo",
		http.MethodGet, ServiceOpenBanking, "customers/"+customerCode, nil, nil)
}
