package client

import "strings"

// Service is the API product segment of a URL.
type Service string

const (
	ServiceOpenBanking Service = "open-banking"
	ServicePayment     Service = "payment"
	ServiceAcquiring   Service = "acquiring"
	ServiceInvoice     Service = "invoice"
	ServiceConsent     Service = "consent"
	ServiceSBP         Service = "sbp"
	ServiceWebhook     Service = "webhook"
)

// APIVersion is the version segment of a URL.
type APIVersion string

const V1_0 APIVersion = "v1.0"

// BuildURL returns {base}{service}/{version}/{path}. A single leading '/'
// is removed from path; nothing else is normalized.
func BuildURL(base string, service Service, version APIVersion, path string) string {
	return base + string(service) + "/" + string(version) + "/" + strings.TrimPrefix(path, "/")
}

// URL builds an endpoint URL against the client's base.
func (c *Client) URL(service Service, version APIVersion, path string) string {
	return BuildURL(c.baseURL, service, version, path)
}
