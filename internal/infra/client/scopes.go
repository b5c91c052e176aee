package client

import (
	"fmt"

	"github.com/boddenberg/tochka-go/internal/domain"
)

// requiredScopes maps an operation to the permission it needs.
var requiredScopes = map[string]domain.Scope{
	"GetAccountsList":               domain.ScopeReadAccountsBasic,
	"GetAccountInfo":                domain.ScopeReadAccountsBasic,
	"GetBalancesList":               domain.ScopeReadBalances,
	"GetBalanceInfo":                domain.ScopeReadBalances,
	"GetAuthorizedCardTransactions": domain.ScopeReadTransactionsBasic,
	"GetCustomersList":              domain.ScopeReadCustomerData,
	"GetCustomerInfo":               domain.ScopeReadCustomerData,
	"PaymentOperationList":          domain.ScopeReadAcquiringData,
	"CreatePaymentOperation":        domain.ScopeMakeAcquiringOperation,
	"PaymentOperationInfo":          domain.ScopeReadAcquiringData,
	"CapturePayment":                domain.ScopeMakeAcquiringOperation,
	"RefundPaymentOperation":        domain.ScopeMakeAcquiringOperation,
	"GetPaymentRegistry":            domain.ScopeReadAcquiringData,
	"GetRetailers":                  domain.ScopeReadAcquiringData,
	"InitStatement":                 domain.ScopeReadStatements,
	"GetStatementsList":             domain.ScopeReadStatements,
	"GetStatement":                  domain.ScopeReadStatements,
	"CreateWebhook":                 domain.ScopeManageWebhookData,
	"EditWebhook":                   domain.ScopeManageWebhookData,
	"GetWebhooks":                   domain.ScopeManageWebhookData,
	"DeleteWebhook":                 domain.ScopeManageWebhookData,
	"SendTestWebhook":               domain.ScopeManageWebhookData,
}

// RequiredScope reports the permission op needs, if any.
func RequiredScope(op string) (domain.Scope, bool) {
	s, ok := requiredScopes[op]
	return s, ok
}

// checkScope enforces the scope policy. Without configured scopes every
// operation is allowed and the server decides.
func (c *Client) checkScope(op string) error {
	if c.granted == nil {
		return nil
	}
	scope, ok := requiredScopes[op]
	if !ok || c.granted.Contains(scope) {
		return nil
	}
	return &domain.ErrConfig{Message: fmt.Sprintf("scope %s not granted for %s", scope, op)}
}
