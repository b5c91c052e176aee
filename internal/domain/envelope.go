package domain

// ============================================================
// Response / request envelopes
// ============================================================

// Data is the single-resource response envelope.
type Data[T any] struct {
	Data  T    `json:"Data"`
	Links Link `json:"Links"`
	Meta  Meta `json:"Meta"`
}

// PaginatedResponse is the list response envelope.
type PaginatedResponse[T any] struct {
	Links PaginatedLink `json:"Links"`
	Meta  Meta          `json:"Meta"`
	Data  T             `json:"Data"`
}

// Link holds the self link of a single-resource response.
type Link struct {
	Self string `json:"self"`
}

// PaginatedLink holds navigation links of a list response.
type PaginatedLink struct {
	Self  string  `json:"self"`
	First *string `json:"first,omitempty"`
	Prev  *string `json:"prev,omitempty"`
	Next  *string `json:"next,omitempty"`
	Last  *string `json:"last,omitempty"`
}

// Meta carries page metadata.
type Meta struct {
	TotalPages uint64 `json:"totalPages"`
}

// Payload wraps an outbound body as {"Data": ...}.
type Payload[T any] struct {
	Data T `json:"Data"`
}

// Wrap builds the outbound envelope for v.
func Wrap[T any](v T) Payload[T] {
	return Payload[T]{Data: v}
}

// ResultBody is the boolean outcome returned by capture and webhook mutations.
type ResultBody struct {
	Result bool `json:"result"`
}
