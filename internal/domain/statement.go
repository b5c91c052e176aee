package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ============================================================
// Statements
// ============================================================

// Statement is an account statement for a date range.
type Statement struct {
	AccountID        string                 `json:"accountId" validate:"max=40"`
	StatementID      *string                `json:"statementId,omitempty" validate:"omitempty,max=40"`
	Status           StatementStatus        `json:"status"`
	StartDateTime    Date                   `json:"startDateTime"`
	EndDateTime      Date                   `json:"endDateTime"`
	CreationDateTime time.Time              `json:"creationDateTime"`
	StartDateBalance *float64               `json:"startDateBalance,omitempty"`
	EndDateBalance   *float64               `json:"endDateBalance,omitempty"`
	Transaction      []TransactionStatement `json:"Transaction,omitempty"`
}

// StatementPayload requests a statement for one account.
type StatementPayload struct {
	AccountID     string `json:"accountId" validate:"required,max=40"`
	StartDateTime Date   `json:"startDateTime"`
	EndDateTime   Date   `json:"endDateTime"`
}

// StatementRequest is the body of the init statement call.
type StatementRequest struct {
	Statement StatementPayload `json:"Statement"`
}

// StatementPageData is the Data payload of statement responses.
type StatementPageData struct {
	Statement []Statement `json:"Statement"`
}

// StatementStatus is the preparation state of a statement.
type StatementStatus string

const (
	StatementCreated    StatementStatus = "Created"
	StatementProcessing StatementStatus = "Processing"
	StatementError      StatementStatus = "Error"
	StatementReady      StatementStatus = "Ready"
)

var statementStatuses = []StatementStatus{StatementCreated, StatementProcessing, StatementError, StatementReady}

func (s *StatementStatus) UnmarshalText(b []byte) error {
	v, err := parseEnum("StatementStatus", string(b), statementStatuses)
	*s = v
	return err
}

// TransactionStatement is one booked or pending line of a statement.
type TransactionStatement struct {
	TransactionID        *string              `json:"transactionId,omitempty"`
	PaymentID            *string              `json:"paymentId,omitempty"`
	CreditDebitIndicator CreditDebitIndicator `json:"creditDebitIndicator"`
	Status               TransactionStatus    `json:"status"`
	DocumentNumber       *string              `json:"documentNumber,omitempty"`
	TransactionTypeCode  *TransactionTypeCode `json:"transactionTypeCode,omitempty"`
	DocumentProcessDate  *Date                `json:"documentProcessDate,omitempty"`
	Description          *string              `json:"description,omitempty"`
	Amount               Amount               `json:"Amount"`
	DebtorParty          *Contractor          `json:"DebtorParty,omitempty"`
	DebtorAccount        *CashAccount         `json:"DebtorAccount,omitempty"`
	DebtorAgent          *ContractorBank      `json:"DebtorAgent,omitempty"`
	CreditorParty        *Contractor          `json:"CreditorParty,omitempty"`
	CreditorAccount      *CashAccount         `json:"CreditorAccount,omitempty"`
	CreditorAgent        *ContractorBank      `json:"CreditorAgent,omitempty"`
	TaxFields            *TaxFields           `json:"TaxFields,omitempty"`
}

// TransactionStatus is the booking state of a statement line.
type TransactionStatus string

const (
	TransactionBooked  TransactionStatus = "Booked"
	TransactionPending TransactionStatus = "Pending"
)

var transactionStatuses = []TransactionStatus{TransactionBooked, TransactionPending}

func (s *TransactionStatus) UnmarshalText(b []byte) error {
	v, err := parseEnum("TransactionStatus", string(b), transactionStatuses)
	*s = v
	return err
}

// TransactionTypeCode is the settlement document type of a statement line.
type TransactionTypeCode string

const (
	TypeCodeUndefined         TransactionTypeCode = "Неопределенное значение"
	TypeCodePaymentOrder      TransactionTypeCode = "Платежное поручение"
	TypeCodePaymentRequest    TransactionTypeCode = "Платежное требование"
	TypeCodeCashCheck         TransactionTypeCode = "Денежный чек, РКО"
	TypeCodeCashDeposit       TransactionTypeCode = "Объявление на взнос наличными, ПКО"
	TypeCodeRequestOrder      TransactionTypeCode = "Требование-поручение"
	TypeCodeCollectionOrder   TransactionTypeCode = "Инкассовое поручение"
	TypeCodeSettlementCheck   TransactionTypeCode = "Расчетный чек"
	TypeCodeLetterOfCredit    TransactionTypeCode = "Аккредитив"
	TypeCodeMemorialOrder     TransactionTypeCode = "Мемориальный ордер"
	TypeCodeLoanRepayment     TransactionTypeCode = "Погашение кредита"
	TypeCodeLoanIssue         TransactionTypeCode = "Выдача кредита"
	TypeCodeAdvice            TransactionTypeCode = "Авизо"
	TypeCodeBankCards         TransactionTypeCode = "Банковские карты"
	TypeCodePaymentWarrant    TransactionTypeCode = "Платежный ордер"
	TypeCodeBankOrder         TransactionTypeCode = "Банковский ордер"
	TypeCodeValuablesTransfer TransactionTypeCode = "Ордер по передаче ценностей"
	TypeCodeProgramOrder      TransactionTypeCode = "Программный ордер"
	TypeCodeImportedRecord    TransactionTypeCode = "Импортированная запись"
)

var transactionTypeCodes = []TransactionTypeCode{
	TypeCodeUndefined, TypeCodePaymentOrder, TypeCodePaymentRequest, TypeCodeCashCheck,
	TypeCodeCashDeposit, TypeCodeRequestOrder, TypeCodeCollectionOrder, TypeCodeSettlementCheck,
	TypeCodeLetterOfCredit, TypeCodeMemorialOrder, TypeCodeLoanRepayment, TypeCodeLoanIssue,
	TypeCodeAdvice, TypeCodeBankCards, TypeCodePaymentWarrant, TypeCodeBankOrder,
	TypeCodeValuablesTransfer, TypeCodeProgramOrder, TypeCodeImportedRecord,
}

func (c *TransactionTypeCode) UnmarshalText(b []byte) error {
	v, err := parseEnum("TransactionTypeCode", string(b), transactionTypeCodes)
	*c = v
	return err
}

// TaxFields are budget payment attributes of a statement line.
type TaxFields struct {
	Base             *string       `json:"base,omitempty"`
	DocumentDate     *DocumentDate `json:"documentDate,omitempty"`
	DocumentNumber   *string       `json:"documentNumber,omitempty"`
	Field107         *string       `json:"field107,omitempty"`
	KBK              *string       `json:"kbk,omitempty"`
	OKTMO            *string       `json:"oktmo,omitempty"`
	OriginatorStatus *string       `json:"originatorStatus,omitempty"`
	Type             *string       `json:"type,omitempty"`
}

// DocumentDate is sent either as text or as a bare number.
type DocumentDate struct {
	Text   string
	Number *int
}

func (d DocumentDate) String() string {
	if d.Number != nil {
		return strconv.Itoa(*d.Number)
	}
	return d.Text
}

func (d DocumentDate) MarshalJSON() ([]byte, error) {
	if d.Number != nil {
		return json.Marshal(*d.Number)
	}
	return json.Marshal(d.Text)
}

func (d *DocumentDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &d.Text)
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("invalid type: expected string or integer, got %s", b)
	}
	d.Number = &n
	return nil
}
