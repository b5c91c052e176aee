package domain

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// Jwk is the public key webhook tokens are signed with.
type Jwk struct {
	Kty string  `json:"kty"`
	N   string  `json:"n"`
	E   string  `json:"e"`
	Kid *string `json:"kid,omitempty"`
	Alg *string `json:"alg,omitempty"`
}

// RSAPublicKey builds the verification key from the modulus and exponent.
func (k Jwk) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}

	raw, err := json.Marshal(struct {
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	}{k.Kty, k.N, k.E})
	if err != nil {
		return nil, err
	}

	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("invalid jwk: %w", err)
	}

	pub, ok := jwk.Key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("jwk is not an RSA public key")
	}
	return pub, nil
}
