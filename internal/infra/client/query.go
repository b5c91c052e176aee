package client

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"

	"github.com/boddenberg/tochka-go/internal/domain"
)

var queryEncoder = newQueryEncoder()

func newQueryEncoder() *schema.Encoder {
	enc := schema.NewEncoder()
	enc.SetAliasTag("query")
	enc.RegisterEncoder(domain.Date{}, func(v reflect.Value) string {
		return v.Interface().(domain.Date).String()
	})
	return enc
}

// encodeQuery turns a query struct into URL values using its query tags.
func encodeQuery(q any) (url.Values, error) {
	values := url.Values{}
	if err := queryEncoder.Encode(q, values); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return values, nil
}
