package domain

import "github.com/google/uuid"

// ============================================================
// Webhooks
// ============================================================

// Webhook is the webhook subscription of an application.
type Webhook struct {
	WebhooksList []WebhookType `json:"webhooksList" validate:"required,min=1"`
	URL          string        `json:"url" validate:"required,url,max=2083"`
}

// WebhookType is an event kind a webhook can subscribe to.
type WebhookType string

const (
	WebhookIncomingPayment          WebhookType = "incomingPayment"
	WebhookOutgoingPayment          WebhookType = "outgoingPayment"
	WebhookIncomingSBPPayment       WebhookType = "incomingSbpPayment"
	WebhookAcquiringInternetPayment WebhookType = "acquiringInternetPayment"
	WebhookIncomingSBPB2BPayment    WebhookType = "incomingSbpB2BPayment"
)

var webhookTypes = []WebhookType{
	WebhookIncomingPayment, WebhookOutgoingPayment, WebhookIncomingSBPPayment,
	WebhookAcquiringInternetPayment, WebhookIncomingSBPB2BPayment,
}

func (t *WebhookType) UnmarshalText(b []byte) error {
	v, err := parseEnum("WebhookType", string(b), webhookTypes)
	*t = v
	return err
}

// ParseWebhookType maps a wire literal to a WebhookType.
func ParseWebhookType(s string) (WebhookType, error) {
	return parseEnum("WebhookType", s, webhookTypes)
}

// TestWebhook is the body of a test delivery request.
type TestWebhook struct {
	WebhookType WebhookType `json:"webhookType"`
}

// AcquiringClaims are the verified claims of an acquiringInternetPayment webhook.
// ConsumerID is set for card payments; TransactionID, QrcID and PayerName for SBP.
type AcquiringClaims struct {
	CustomerCode  string        `json:"customerCode"`
	Amount        string        `json:"amount"`
	PaymentType   PaymentMode   `json:"paymentType"`
	WebhookType   WebhookType   `json:"webhookType"`
	OperationID   uuid.UUID     `json:"operationId"`
	Purpose       string        `json:"purpose"`
	MerchantID    string        `json:"merchantId"`
	Status        PaymentStatus `json:"status"`
	ConsumerID    *uuid.UUID    `json:"consumerId,omitempty"`
	TransactionID *uuid.UUID    `json:"transactionId,omitempty"`
	QrcID         *string       `json:"qrcId,omitempty"`
	PayerName     *string       `json:"payerName,omitempty"`
}
