package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/tochka-go/internal/domain"
)

// GetAccountsList lists the accounts visible to the token.
func (c *Client) GetAccountsList(ctx context.Context) (*domain.Data[domain.AccountPageData], error) {
	return call[domain.Data[domain.AccountPageData]](ctx, c, "GetAccountsList",
		http.MethodGet, ServiceOpenBanking, "accounts", nil, nil)
}

// GetAccountInfo returns one account.
func (c *Client) GetAccountInfo(ctx context.Context, accountID string) (*domain.Data[domain.Account], error) {
	return call[domain.Data[domain.Account]](ctx, c, "GetAccountInfo",
		http.MethodGet, ServiceOpenBanking, "accounts/"+accountID, nil, nil)
}

// GetBalancesList lists balances of all accounts.
func (c *Client) GetBalancesList(ctx context.Context) (*domain.PaginatedResponse[domain.BalancePageData], error) {
	return call[domain.PaginatedResponse[domain.BalancePageData]](ctx, c, "GetBalancesList",
		http.MethodGet, ServiceOpenBanking, "balances", nil, nil)
}

// GetBalanceInfo returns the balances of one account.
func (c *Client) GetBalanceInfo(ctx context.Context, accountID string) (*domain.Data[domain.BalancePageData], error) {
	return call[domain.Data[domain.BalancePageData]](ctx, c, "GetBalanceInfo",
		http.MethodGet, ServiceOpenBanking, "accounts/"+accountID+"/balances", nil, nil)
}

// GetAuthorizedCardTransactions lists card transactions authorized but not
// yet settled on an account.
func (c *Client) GetAuthorizedCardTransactions(ctx context.Context, accountID string) (*domain.Data[domain.TransactionPageData], error) {
	return call[domain.Data[domain.TransactionPageData]](ctx, c, "GetAuthorizedCardTransactions",
		http.MethodGet, ServiceOpenBanking, "accounts/"+accountID+"/authorized-card-transactions", nil, nil)
}
