package domain

// ============================================================
// Payment enums
// ============================================================

// PaymentStatus is the state of an acquiring payment operation.
type PaymentStatus string

const (
	PaymentCreated           PaymentStatus = "CREATED"
	PaymentApproved          PaymentStatus = "APPROVED"
	PaymentOnRefund          PaymentStatus = "ON-REFUND"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentExpired           PaymentStatus = "EXPIRED"
	PaymentRefundedPartially PaymentStatus = "REFUNDED_PARTIALLY"
	PaymentAuthorized        PaymentStatus = "AUTHORIZED"
	PaymentWaitFullPayment   PaymentStatus = "WAIT_FULL_PAYMENT"
)

var paymentStatuses = []PaymentStatus{
	PaymentCreated, PaymentApproved, PaymentOnRefund, PaymentRefunded, PaymentExpired,
	PaymentRefundedPartially, PaymentAuthorized, PaymentWaitFullPayment,
}

func (s *PaymentStatus) UnmarshalText(b []byte) error {
	v, err := parseEnum("PaymentStatus", string(b), paymentStatuses)
	*s = v
	return err
}

// ParsePaymentStatus maps a wire literal to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseEnum("PaymentStatus", s, paymentStatuses)
}

// PaymentMode is a payment channel offered on the payment page.
type PaymentMode string

const (
	PaymentModeSBP     PaymentMode = "sbp"
	PaymentModeCard    PaymentMode = "card"
	PaymentModeTinkoff PaymentMode = "tinkoff"
	PaymentModeDolyame PaymentMode = "dolyame"
)

var paymentModes = []PaymentMode{PaymentModeSBP, PaymentModeCard, PaymentModeTinkoff, PaymentModeDolyame}

func (m *PaymentMode) UnmarshalText(b []byte) error {
	v, err := parseEnum("PaymentMode", string(b), paymentModes)
	*m = v
	return err
}

// ParsePaymentMode maps a wire literal to a PaymentMode.
func ParsePaymentMode(s string) (PaymentMode, error) {
	return parseEnum("PaymentMode", s, paymentModes)
}

// PaymentMethod is the fiscal settlement method of a receipt item.
type PaymentMethod string

const (
	PaymentMethodFullPayment    PaymentMethod = "full_payment"
	PaymentMethodFullPrepayment PaymentMethod = "full_prepayment"
)

var paymentMethods = []PaymentMethod{PaymentMethodFullPayment, PaymentMethodFullPrepayment}

func (m *PaymentMethod) UnmarshalText(b []byte) error {
	v, err := parseEnum("PaymentMethod", string(b), paymentMethods)
	*m = v
	return err
}

// PaymentObject is the fiscal subject of a receipt item.
type PaymentObject string

const (
	PaymentObjectGoods   PaymentObject = "goods"
	PaymentObjectService PaymentObject = "service"
	PaymentObjectWork    PaymentObject = "work"
)

var paymentObjects = []PaymentObject{PaymentObjectGoods, PaymentObjectService, PaymentObjectWork}

func (o *PaymentObject) UnmarshalText(b []byte) error {
	v, err := parseEnum("PaymentObject", string(b), paymentObjects)
	*o = v
	return err
}

// OrderType is the kind of an order attached to a payment operation.
type OrderType string

const (
	OrderRefund     OrderType = "refund"
	OrderApproval   OrderType = "approval"
	OrderAuthorized OrderType = "authorized"
)

var orderTypes = []OrderType{OrderRefund, OrderApproval, OrderAuthorized}

func (t *OrderType) UnmarshalText(b []byte) error {
	v, err := parseEnum("OrderType", string(b), orderTypes)
	*t = v
	return err
}

// TaxSystemCode is the merchant's taxation regime.
type TaxSystemCode string

const (
	TaxSystemOSN              TaxSystemCode = "osn"
	TaxSystemUSNIncome        TaxSystemCode = "usn_income"
	TaxSystemUSNIncomeOutcome TaxSystemCode = "usn_income_outcome"
	TaxSystemESN              TaxSystemCode = "esn"
	TaxSystemPatent           TaxSystemCode = "patent"
	TaxSystemENVD             TaxSystemCode = "envd"
)

var taxSystemCodes = []TaxSystemCode{
	TaxSystemOSN, TaxSystemUSNIncome, TaxSystemUSNIncomeOutcome,
	TaxSystemESN, TaxSystemPatent, TaxSystemENVD,
}

func (c *TaxSystemCode) UnmarshalText(b []byte) error {
	v, err := parseEnum("TaxSystemCode", string(b), taxSystemCodes)
	*c = v
	return err
}

// VatType is the VAT rate applied to a receipt item.
type VatType string

const (
	VatNone VatType = "none"
	Vat0    VatType = "vat0"
	Vat5    VatType = "vat5"
	Vat7    VatType = "vat7"
	Vat10   VatType = "vat10"
	Vat20   VatType = "vat20"
	Vat105  VatType = "vat105"
	Vat107  VatType = "vat107"
	Vat110  VatType = "vat110"
	Vat120  VatType = "vat120"
)

var vatTypes = []VatType{VatNone, Vat0, Vat5, Vat7, Vat10, Vat20, Vat105, Vat107, Vat110, Vat120}

func (v *VatType) UnmarshalText(b []byte) error {
	parsed, err := parseEnum("VatType", string(b), vatTypes)
	*v = parsed
	return err
}
