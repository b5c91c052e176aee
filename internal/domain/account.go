package domain

import "time"

// ============================================================
// Accounts
// ============================================================

// Account is a bank account visible to the token.
type Account struct {
	CustomerCode         string          `json:"customerCode" validate:"min=9"`
	AccountID            string          `json:"accountId"`
	TransitAccount       *string         `json:"transitAccount,omitempty"`
	Status               AccountStatus   `json:"status"`
	StatusUpdateDateTime time.Time       `json:"statusUpdateDateTime"`
	Currency             Currency        `json:"currency"`
	AccountType          CustomerType    `json:"accountType"`
	AccountSubType       AccountSubType  `json:"accountSubType"`
	RegistrationDate     Date            `json:"registrationDate"`
	AccountDetails       []AccountDetail `json:"accountDetails,omitempty" validate:"omitempty,dive"`
}

// AccountDetail identifies an account in an external scheme.
type AccountDetail struct {
	Identification string `json:"identification" validate:"max=40"`
	Name           string `json:"name"`
	SchemeName     string `json:"schemeName"`
}

// AccountPageData is the Data payload of the accounts list.
type AccountPageData struct {
	Account []Account `json:"Account"`
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusEnabled  AccountStatus = "Enabled"
	AccountStatusDisabled AccountStatus = "Disabled"
	AccountStatusDeleted  AccountStatus = "Deleted"
	AccountStatusProForma AccountStatus = "ProForma"
	AccountStatusPending  AccountStatus = "Pending"
)

var accountStatuses = []AccountStatus{
	AccountStatusEnabled, AccountStatusDisabled, AccountStatusDeleted,
	AccountStatusProForma, AccountStatusPending,
}

func (s *AccountStatus) UnmarshalText(b []byte) error {
	v, err := parseEnum("AccountStatus", string(b), accountStatuses)
	*s = v
	return err
}

// AccountSubType is the product kind of an account.
type AccountSubType string

const (
	AccountSubTypeCreditCard     AccountSubType = "CreditCard"
	AccountSubTypeCurrentAccount AccountSubType = "CurrentAccount"
	AccountSubTypeLoan           AccountSubType = "Loan"
	AccountSubTypeMortgage       AccountSubType = "Mortgage"
	AccountSubTypePrePaidCard    AccountSubType = "PrePaidCard"
	AccountSubTypeSavings        AccountSubType = "Savings"
	AccountSubTypeSpecial        AccountSubType = "Special"
)

var accountSubTypes = []AccountSubType{
	AccountSubTypeCreditCard, AccountSubTypeCurrentAccount, AccountSubTypeLoan,
	AccountSubTypeMortgage, AccountSubTypePrePaidCard, AccountSubTypeSavings,
	AccountSubTypeSpecial,
}

func (s *AccountSubType) UnmarshalText(b []byte) error {
	v, err := parseEnum("AccountSubType", string(b), accountSubTypes)
	*s = v
	return err
}

// CustomerType distinguishes business and personal customers and accounts.
type CustomerType string

const (
	CustomerTypeBusiness CustomerType = "Business"
	CustomerTypePersonal CustomerType = "Personal"
)

var customerTypes = []CustomerType{CustomerTypeBusiness, CustomerTypePersonal}

func (t *CustomerType) UnmarshalText(b []byte) error {
	v, err := parseEnum("CustomerType", string(b), customerTypes)
	*t = v
	return err
}

// AccountIdentification is the scheme of a counterparty account number.
type AccountIdentification string

const (
	AccountIdentificationPAN             AccountIdentification = "RU.CBR.PAN"
	AccountIdentificationCellphoneNumber AccountIdentification = "RU.CBR.CellphoneNumber"
	AccountIdentificationBBAN            AccountIdentification = "RU.CBR.BBAN"
)

var accountIdentifications = []AccountIdentification{
	AccountIdentificationPAN, AccountIdentificationCellphoneNumber, AccountIdentificationBBAN,
}

func (a *AccountIdentification) UnmarshalText(b []byte) error {
	v, err := parseEnum("AccountIdentification", string(b), accountIdentifications)
	*a = v
	return err
}

// CashAccount is a counterparty account reference inside a statement.
type CashAccount struct {
	Identification *string               `json:"identification,omitempty"`
	SchemeName     AccountIdentification `json:"schemeName"`
}
