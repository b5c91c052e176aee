package client

import (
	"context"
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/boddenberg/tochka-go/internal/domain"
)

// SelectBusinessCustomerCode picks the customer code of the Business
// accounts. Duplicates collapse; zero or several distinct codes are an error.
func SelectBusinessCustomerCode(accounts []domain.Account) (string, error) {
	codes := mapset.NewThreadUnsafeSet[string]()
	for _, a := range accounts {
		if a.AccountType == domain.CustomerTypeBusiness {
			codes.Add(a.CustomerCode)
		}
	}

	switch codes.Cardinality() {
	case 0:
		return "", &domain.ErrConfig{Message: "no Business accounts found to derive a customer code"}
	case 1:
		code, _ := codes.Pop()
		return code, nil
	default:
		list := codes.ToSlice()
		sort.Strings(list)
		return "", &domain.ErrConfig{Message: fmt.Sprintf(
			"multiple Business accounts with different customer codes (%s); set the customer code explicitly",
			strings.Join(list, ", "),
		)}
	}
}

// CustomerCode returns the known customer code without any request.
func (c *Client) CustomerCode() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.customerCode, c.customerCode != ""
}

// ResolveCustomerCode returns the configured or previously resolved code,
// otherwise derives it from the accounts list. Concurrent callers share one
// request; failures are not remembered. Cancelling ctx stops only this
// caller's wait.
func (c *Client) ResolveCustomerCode(ctx context.Context) (string, error) {
	if code, ok := c.CustomerCode(); ok {
		return code, nil
	}

	v, err := c.shared(ctx, "customer-code", func(ctx context.Context) (any, error) {
		if code, ok := c.CustomerCode(); ok {
			return code, nil
		}

		resp, err := c.GetAccountsList(ctx)
		if err != nil {
			return "", err
		}
		code, err := SelectBusinessCustomerCode(resp.Data.Account)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		if c.customerCode == "" {
			c.customerCode = code
		}
		code = c.customerCode
		c.mu.Unlock()
		return code, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
