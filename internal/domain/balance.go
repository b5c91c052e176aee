package domain

import "time"

// ============================================================
// Balances and card transactions
// ============================================================

// Balance is one balance figure of an account.
type Balance struct {
	AccountID            string               `json:"accountId"`
	CreditDebitIndicator CreditDebitIndicator `json:"creditDebitIndicator"`
	Type                 BalanceType          `json:"type"`
	DateTime             time.Time            `json:"dateTime"`
	Amount               Amount               `json:"Amount"`
}

// BalancePageData is the Data payload of balance responses.
type BalancePageData struct {
	Balance []Balance `json:"Balance"`
}

// CreditDebitIndicator tells whether an amount is a credit or a debit.
type CreditDebitIndicator string

const (
	Credit CreditDebitIndicator = "Credit"
	Debit  CreditDebitIndicator = "Debit"
)

var creditDebitIndicators = []CreditDebitIndicator{Credit, Debit}

func (c *CreditDebitIndicator) UnmarshalText(b []byte) error {
	v, err := parseEnum("CreditDebitIndicator", string(b), creditDebitIndicators)
	*c = v
	return err
}

// BalanceType names which balance figure is reported.
type BalanceType string

const (
	BalanceOpeningAvailable   BalanceType = "OpeningAvailable"
	BalanceClosingAvailable   BalanceType = "ClosingAvailable"
	BalanceExpected           BalanceType = "Expected"
	BalanceOverdraftAvailable BalanceType = "OverdraftAvailable"
)

var balanceTypes = []BalanceType{
	BalanceOpeningAvailable, BalanceClosingAvailable, BalanceExpected, BalanceOverdraftAvailable,
}

func (t *BalanceType) UnmarshalText(b []byte) error {
	v, err := parseEnum("BalanceType", string(b), balanceTypes)
	*t = v
	return err
}

// Transaction is an authorized but not yet settled card transaction.
type Transaction struct {
	AccountID     string       `json:"accountId"`
	Pan           string       `json:"pan"`
	DateTime      time.Time    `json:"dateTime"`
	Amount        Amount       `json:"Amount"`
	AccountAmount Amount       `json:"AccountAmount"`
	TerminalData  TerminalData `json:"TerminalData"`
}

// TerminalData describes where a card transaction happened.
type TerminalData struct {
	City     *string `json:"city,omitempty"`
	Location *string `json:"location,omitempty"`
	Owner    *string `json:"owner,omitempty"`
}

// TransactionPageData is the Data payload of the card transactions list.
type TransactionPageData struct {
	Transactions []Transaction `json:"Transactions"`
}
