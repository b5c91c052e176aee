package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/validation"
)

// InitStatement orders a statement; it is prepared asynchronously and
// polled with GetStatement.
func (c *Client) InitStatement(ctx context.Context, payload domain.StatementPayload) (*domain.Data[domain.StatementPageData], error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	body := domain.Wrap(domain.StatementRequest{Statement: payload})
	return call[domain.Data[domain.StatementPageData]](ctx, c, "InitStatement",
		http.MethodPost, ServiceOpenBanking, "statements", nil, body)
}

// GetStatementsList lists recently ordered statements.
func (c *Client) GetStatementsList(ctx context.Context) (*domain.Data[domain.StatementPageData], error) {
	return call[domain.Data[domain.StatementPageData]](ctx, c, "GetStatementsList",
		http.MethodGet, ServiceOpenBanking, "statements", nil, nil)
}

// GetStatement returns one statement with its transactions once Ready.
func (c *Client) GetStatement(ctx context.Context, accountID, statementID string) (*domain.Data[domain.StatementPageData], error) {
	path := "accounts/" + accountID + "/statements/" + statementID
	return call[domain.Data[domain.StatementPageData]](ctx, c, "GetStatement",
		http.MethodGet, ServiceOpenBanking, path, nil, nil)
}
