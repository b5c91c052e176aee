package domain

// Scope is an OAuth permission granted to the bearer token.
type Scope string

const (
	ScopeReadAccountsBasic       Scope = "ReadAccountsBasic"
	ScopeReadAccountsDetail      Scope = "ReadAccountsDetail"
	ScopeReadBalances            Scope = "ReadBalances"
	ScopeReadStatements          Scope = "ReadStatements"
	ScopeReadTransactionsBasic   Scope = "ReadTransactionsBasic"
	ScopeReadTransactionsCredits Scope = "ReadTransactionsCredits"
	ScopeReadTransactionsDebits  Scope = "ReadTransactionsDebits"
	ScopeReadTransactionsDetail  Scope = "ReadTransactionsDetail"
	ScopeReadCustomerData        Scope = "ReadCustomerData"
	ScopeReadSBPData             Scope = "ReadSBPData"
	ScopeEditSBPData             Scope = "EditSBPData"
	ScopeCreatePaymentForSign    Scope = "CreatePaymentForSign"
	ScopeCreatePaymentOrder      Scope = "CreatePaymentOrder"
	ScopeReadAcquiringData       Scope = "ReadAcquiringData"
	ScopeMakeAcquiringOperation  Scope = "MakeAcquiringOperation"
	ScopeManageInvoiceData       Scope = "ManageInvoiceData"
	ScopeManageWebhookData       Scope = "ManageWebhookData"
	ScopeMakeCustomer            Scope = "MakeCustomer"
	ScopeManageGuarantee         Scope = "ManageGuarantee"
)

var scopes = []Scope{
	ScopeReadAccountsBasic, ScopeReadAccountsDetail, ScopeReadBalances, ScopeReadStatements,
	ScopeReadTransactionsBasic, ScopeReadTransactionsCredits, ScopeReadTransactionsDebits,
	ScopeReadTransactionsDetail, ScopeReadCustomerData, ScopeReadSBPData, ScopeEditSBPData,
	ScopeCreatePaymentForSign, ScopeCreatePaymentOrder, ScopeReadAcquiringData,
	ScopeMakeAcquiringOperation, ScopeManageInvoiceData, ScopeManageWebhookData,
	ScopeMakeCustomer, ScopeManageGuarantee,
}

// ParseScope maps a consent permission literal to a Scope.
func ParseScope(s string) (Scope, error) {
	return parseEnum("Scope", s, scopes)
}

func (s *Scope) UnmarshalText(b []byte) error {
	v, err := parseEnum("Scope", string(b), scopes)
	*s = v
	return err
}
