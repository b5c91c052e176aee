package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/validation"
)

// withCustomerCode returns code, or the client's known code when code is
// empty. It never resolves over the network.
func (c *Client) withCustomerCode(code, op string) (string, error) {
	if code != "" {
		return code, nil
	}
	if known, ok := c.CustomerCode(); ok {
		return known, nil
	}
	return "", &domain.ErrConfig{Message: fmt.Sprintf("customer code is required for %s; set it or call ResolveCustomerCode", op)}
}

// PaymentOperationList lists payment operations matching query.
func (c *Client) PaymentOperationList(ctx context.Context, query domain.PaymentListQuery) (*domain.PaginatedResponse[domain.PaymentPageData], error) {
	code, err := c.withCustomerCode(query.CustomerCode, "PaymentOperationList")
	if err != nil {
		return nil, err
	}
	query.CustomerCode = code
	if err := validation.Struct(query); err != nil {
		return nil, err
	}

	values, err := encodeQuery(query)
	if err != nil {
		return nil, err
	}
	return call[domain.PaginatedResponse[domain.PaymentPageData]](ctx, c, "PaymentOperationList",
		http.MethodGet, ServiceAcquiring, "payments", values, nil)
}

// CreatePaymentOperation creates a payment link. PaymentPathWithReceipt
// also issues a fiscal receipt from Client and Items.
func (c *Client) CreatePaymentOperation(ctx context.Context, payload domain.CreatePaymentPayload, path domain.PaymentPath) (*domain.Data[domain.PaymentOperation], error) {
	if path != domain.PaymentPathPayments && path != domain.PaymentPathWithReceipt {
		return nil, &domain.ErrConfig{Message: fmt.Sprintf("unknown payment path %q", path)}
	}

	code, err := c.withCustomerCode(payload.CustomerCode, "CreatePaymentOperation")
	if err != nil {
		return nil, err
	}
	payload.CustomerCode = code
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	return call[domain.Data[domain.PaymentOperation]](ctx, c, "CreatePaymentOperation",
		http.MethodPost, ServiceAcquiring, string(path), nil, domain.Wrap(payload))
}

// PaymentOperationInfo returns one payment operation.
func (c *Client) PaymentOperationInfo(ctx context.Context, operationID string) (*domain.Data[domain.PaymentPageData], error) {
	return call[domain.Data[domain.PaymentPageData]](ctx, c, "PaymentOperationInfo",
		http.MethodGet, ServiceAcquiring, "payments/"+operationID, nil, nil)
}

// CapturePayment confirms a pre-authorized payment.
func (c *Client) CapturePayment(ctx context.Context, operationID string) (*domain.Data[domain.ResultBody], error) {
	return call[domain.Data[domain.ResultBody]](ctx, c, "CapturePayment",
		http.MethodPost, ServiceAcquiring, "payments/"+operationID+"/capture", nil, nil)
}

// RefundPaymentOperation refunds all or part of a payment.
func (c *Client) RefundPaymentOperation(ctx context.Context, operationID string, payload domain.RefundPayload) (*domain.Data[domain.Refund], error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return call[domain.Data[domain.Refund]](ctx, c, "RefundPaymentOperation",
		http.MethodPost, ServiceAcquiring, "payments/"+operationID+"/refund", nil, domain.Wrap(payload))
}

// GetPaymentRegistry returns the settlement registry of one merchant day.
func (c *Client) GetPaymentRegistry(ctx context.Context, query domain.PaymentRegistryQuery) (*domain.Data[domain.RegistryPageData], error) {
	code, err := c.withCustomerCode(query.CustomerCode, "GetPaymentRegistry")
	if err != nil {
		return nil, err
	}
	query.CustomerCode = code
	if err := validation.Struct(query); err != nil {
		return nil, err
	}

	values, err := encodeQuery(query)
	if err != nil {
		return nil, err
	}
	return call[domain.Data[domain.RegistryPageData]](ctx, c, "GetPaymentRegistry",
		http.MethodGet, ServiceAcquiring, "registry", values, nil)
}

// GetRetailers lists the merchants of a customer.
func (c *Client) GetRetailers(ctx context.Context, query domain.RetailerQuery) (*domain.Data[domain.RetailerPageData], error) {
	code, err := c.withCustomerCode(query.CustomerCode, "GetRetailers")
	if err != nil {
		return nil, err
	}
	query.CustomerCode = code

	values, err := encodeQuery(query)
	if err != nil {
		return nil, err
	}
	return call[domain.Data[domain.RetailerPageData]](ctx, c, "GetRetailers",
		http.MethodGet, ServiceAcquiring, "retailers", values, nil)
}
