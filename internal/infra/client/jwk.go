package client

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/infra/decode"
)

// FetchJWK downloads the webhook signing key. The request is not
// authenticated. Every failure is reported as a configuration error.
func FetchJWK(ctx context.Context, httpClient *http.Client, url string) (*domain.Jwk, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.ErrConfig{Message: fmt.Sprintf("build jwk request: %v", stripURL(err))}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &domain.ErrConfig{Message: fmt.Sprintf("fetch jwk: %v", stripURL(err))}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ErrConfig{Message: fmt.Sprintf("read jwk: %v", stripURL(err))}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ErrConfig{Message: fmt.Sprintf("fetch jwk: status %d", resp.StatusCode)}
	}

	var jwk domain.Jwk
	if err := decode.JSON(body, &jwk); err != nil {
		return nil, &domain.ErrConfig{Message: fmt.Sprintf("parse jwk: %v", err)}
	}
	return &jwk, nil
}

// SigningKey returns the webhook verification key, fetching it on first
// use. Concurrent first callers share one fetch; a failed fetch is retried
// by the next caller.
func (c *Client) SigningKey(ctx context.Context) (*rsa.PublicKey, error) {
	c.mu.RLock()
	key := c.signingKey
	c.mu.RUnlock()
	if key != nil {
		return key, nil
	}
	return c.loadSigningKey(ctx, false)
}

// RefreshSigningKey fetches the key again and replaces the cached one on
// success, e.g. after the bank rotated it.
func (c *Client) RefreshSigningKey(ctx context.Context) (*rsa.PublicKey, error) {
	return c.loadSigningKey(ctx, true)
}

func (c *Client) loadSigningKey(ctx context.Context, replace bool) (*rsa.PublicKey, error) {
	v, err := c.shared(ctx, "signing-key", func(ctx context.Context) (any, error) {
		if !replace {
			c.mu.RLock()
			key := c.signingKey
			c.mu.RUnlock()
			if key != nil {
				return key, nil
			}
		}

		jwk, err := FetchJWK(ctx, c.httpClient, c.cfg.JWKURL)
		if err != nil {
			c.metrics.IncrKeyFetch("error")
			c.logger.Error("tochka: signing key fetch failed", zap.Error(err))
			return nil, err
		}
		key, err := jwk.RSAPublicKey()
		if err != nil {
			c.metrics.IncrKeyFetch("error")
			return nil, &domain.ErrConfig{Message: fmt.Sprintf("signing key: %v", err)}
		}
		c.metrics.IncrKeyFetch("ok")

		c.mu.Lock()
		if replace || c.signingKey == nil {
			c.signingKey = key
		}
		key = c.signingKey
		c.mu.Unlock()
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*rsa.PublicKey), nil
}

var tokenParser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	jwt.WithoutClaimsValidation(),
)

// VerifyToken checks an RS256 webhook token against the signing key and
// returns its claims as raw JSON. Time-based claims are not enforced.
func (c *Client) VerifyToken(ctx context.Context, token string) ([]byte, error) {
	key, err := c.SigningKey(ctx)
	if err != nil {
		return nil, err
	}
	return verifyWithKey(key, token)
}

func verifyWithKey(key *rsa.PublicKey, token string) ([]byte, error) {
	token = strings.TrimSpace(token)

	parsed, err := tokenParser.Parse(token, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return nil, &domain.ErrTokenDecode{Err: err}
	}
	if !parsed.Valid {
		return nil, &domain.ErrTokenDecode{Err: errors.New("token is not valid")}
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, &domain.ErrTokenDecode{Err: jwt.ErrTokenMalformed}
	}
	claims, err := tokenParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, &domain.ErrTokenDecode{Err: err}
	}
	return claims, nil
}

// DecodeToken verifies token and decodes its claims into v.
func (c *Client) DecodeToken(ctx context.Context, token string, v any) error {
	claims, err := c.VerifyToken(ctx, token)
	if err != nil {
		return err
	}
	if err := decode.JSON(claims, v); err != nil {
		return &domain.ErrTokenDecode{Err: err}
	}
	return nil
}
