package domain

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================
// Acquiring: payment operations
// ============================================================

// PaymentOperation is an internet-acquiring payment link and its state.
type PaymentOperation struct {
	CustomerCode     *string        `json:"customerCode,omitempty"`
	TaxSystemCode    *TaxSystemCode `json:"taxSystemCode,omitempty"`
	PaymentType      *PaymentMode   `json:"paymentType,omitempty"`
	PaymentID        *string        `json:"paymentId,omitempty"`
	TransactionID    *uuid.UUID     `json:"transactionId,omitempty"`
	CreatedAt        *time.Time     `json:"createdAt,omitempty"`
	PaymentMode      []PaymentMode  `json:"paymentMode,omitempty"`
	RedirectURL      *string        `json:"redirectUrl,omitempty"`
	FailRedirectURL  *string        `json:"failRedirectUrl,omitempty"`
	Client           *ReceiptClient `json:"Client,omitempty"`
	Items            []ReceiptItem  `json:"Items,omitempty"`
	Purpose          *string        `json:"purpose,omitempty"`
	Amount           float64        `json:"amount"`
	Status           PaymentStatus  `json:"status"`
	OperationID      uuid.UUID      `json:"operationId"`
	PaymentLink      string         `json:"paymentLink"`
	MerchantID       *string        `json:"merchantId,omitempty"`
	ConsumerID       *string        `json:"consumerId,omitempty"`
	Order            []Order        `json:"Order,omitempty"`
	Supplier         *Supplier      `json:"Supplier,omitempty"`
	PreAuthorization *bool          `json:"preAuthorization,omitempty"`
	PaidAt           *string        `json:"paidAt,omitempty"`
	PaymentLinkID    *string        `json:"paymentLinkId,omitempty"`
	TTL              *int           `json:"ttl,omitempty"`
}

// Order is a capture or refund booked against a payment operation.
type Order struct {
	OrderID string    `json:"orderId"`
	Type    OrderType `json:"type"`
	Amount  float64   `json:"amount"`
	Time    string    `json:"time"`
}

// PaymentPageData is the Data payload of payment operation lists.
type PaymentPageData struct {
	Operation []PaymentOperation `json:"Operation"`
}

// PaymentPath selects the create endpoint; the receipt variant also issues a fiscal receipt.
type PaymentPath string

const (
	PaymentPathPayments    PaymentPath = "payments"
	PaymentPathWithReceipt PaymentPath = "payments_with_receipt"
)

// CreatePaymentPayload describes a payment link to create.
// Client, Items and TaxSystemCode are only sent to PaymentPathWithReceipt.
type CreatePaymentPayload struct {
	CustomerCode     string         `json:"customerCode" validate:"required,len=9"`
	Amount           float64        `json:"amount" validate:"gt=0"`
	Purpose          string         `json:"purpose" validate:"required,max=140"`
	RedirectURL      *string        `json:"redirectUrl,omitempty" validate:"omitempty,url"`
	FailRedirectURL  *string        `json:"failRedirectUrl,omitempty" validate:"omitempty,url"`
	PaymentMode      []PaymentMode  `json:"paymentMode,omitempty"`
	SaveCard         *bool          `json:"saveCard,omitempty"`
	ConsumerID       *string        `json:"consumerId,omitempty"`
	MerchantID       *string        `json:"merchantId,omitempty"`
	PreAuthorization *bool          `json:"preAuthorization,omitempty"`
	TTL              *int           `json:"ttl,omitempty" validate:"omitempty,min=1,max=44640"`
	PaymentLinkID    *string        `json:"paymentLinkId,omitempty" validate:"omitempty,min=1,max=45"`
	TaxSystemCode    *TaxSystemCode `json:"taxSystemCode,omitempty"`
	Client           *ReceiptClient `json:"Client,omitempty"`
	Items            []ReceiptItem  `json:"Items,omitempty" validate:"omitempty,dive"`
	Supplier         *Supplier      `json:"Supplier,omitempty"`
}

// NewCreatePaymentPayload fills the required fields; optional ones are set directly.
func NewCreatePaymentPayload(amount float64, customerCode, purpose string) CreatePaymentPayload {
	return CreatePaymentPayload{
		CustomerCode: customerCode,
		Amount:       amount,
		Purpose:      purpose,
	}
}

// PaymentListQuery filters the payment operations list.
type PaymentListQuery struct {
	CustomerCode string        `query:"customerCode"`
	FromDate     Date          `query:"fromDate,omitempty"`
	ToDate       Date          `query:"toDate,omitempty"`
	Page         int           `query:"page,omitempty" validate:"gte=0"`
	PerPage      int           `query:"perPage,omitempty" validate:"gte=0,lte=1000"`
	Status       PaymentStatus `query:"status,omitempty"`
}

// NewPaymentListQuery returns a query for all operations of customerCode.
func NewPaymentListQuery(customerCode string) PaymentListQuery {
	return PaymentListQuery{CustomerCode: customerCode}
}

// ============================================================
// Acquiring: refunds
// ============================================================

// RefundPayload requests a full or partial refund.
type RefundPayload struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// Refund is the result of a refund request.
type Refund struct {
	IsRefund    bool      `json:"isRefund"`
	OperationID uuid.UUID `json:"operationId"`
	Amount      float64   `json:"amount"`
	Date        Date      `json:"date"`
	OrderID     string    `json:"orderId"`
}

// ============================================================
// Acquiring: registry
// ============================================================

// PaymentRegistryQuery selects the settlement registry of one merchant day.
type PaymentRegistryQuery struct {
	CustomerCode string `query:"customerCode" validate:"required"`
	MerchantID   string `query:"merchantId" validate:"required"`
	PaymentID    string `query:"paymentId,omitempty"`
	Date         Date   `query:"date" validate:"required"`
}

// NewPaymentRegistryQuery builds a registry query.
func NewPaymentRegistryQuery(customerCode, merchantID, paymentID string, date Date) PaymentRegistryQuery {
	return PaymentRegistryQuery{
		CustomerCode: customerCode,
		MerchantID:   merchantID,
		PaymentID:    paymentID,
		Date:         date,
	}
}

// RegistryPayment is one settled payment in the registry.
type RegistryPayment struct {
	Purpose          string        `json:"purpose"`
	Status           PaymentStatus `json:"status"`
	Amount           float64       `json:"amount"`
	OperationID      uuid.UUID     `json:"operationId"`
	Time             time.Time     `json:"time"`
	Number           uint32        `json:"number"`
	Commission       float64       `json:"commission"`
	EnrollmentAmount float64       `json:"enrollmentAmount"`
}

// RegistryPageData is the Data payload of the registry.
type RegistryPageData struct {
	Registry []RegistryPayment `json:"Registry"`
}

// ============================================================
// Acquiring: retailers
// ============================================================

// Retailer is a merchant onboarded to internet acquiring.
type Retailer struct {
	Status       RetailerStatus `json:"status"`
	IsActive     bool           `json:"isActive"`
	MCC          string         `json:"mcc"`
	Rate         float64        `json:"rate"`
	Name         string         `json:"name"`
	URL          string         `json:"url"`
	MerchantID   string         `json:"merchantId"`
	TerminalID   string         `json:"terminalId"`
	PaymentModes []PaymentMode  `json:"paymentModes"`
	Cashbox      string         `json:"cashbox"`
}

// RetailerPageData is the Data payload of the retailers list.
type RetailerPageData struct {
	Retailer []Retailer `json:"Retailer"`
}

// RetailerQuery selects retailers of one customer.
type RetailerQuery struct {
	CustomerCode string `query:"customerCode" validate:"required"`
}

// RetailerStatus is the onboarding state of a retailer.
type RetailerStatus string

const (
	RetailerNew             RetailerStatus = "NEW"
	RetailerAddressDadata   RetailerStatus = "ADDRESS_DADATA"
	RetailerOpenAccount     RetailerStatus = "OPEN_ACCOUNT"
	RetailerTwpgSended      RetailerStatus = "TWPG_SENDED"
	RetailerCreated         RetailerStatus = "RETAILER_CREATED"
	RetailerTerminalCreated RetailerStatus = "TERMINAL_CREATED"
	RetailerFileSent        RetailerStatus = "FILE_SENT"
	RetailerRegistered      RetailerStatus = "REG"
	RetailerClosed          RetailerStatus = "CLOSE"
)

var retailerStatuses = []RetailerStatus{
	RetailerNew, RetailerAddressDadata, RetailerOpenAccount, RetailerTwpgSended,
	RetailerCreated, RetailerTerminalCreated, RetailerFileSent, RetailerRegistered,
	RetailerClosed,
}

func (s *RetailerStatus) UnmarshalText(b []byte) error {
	v, err := parseEnum("RetailerStatus", string(b), retailerStatuses)
	*s = v
	return err
}
