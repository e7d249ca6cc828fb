// Package venuea implements the JWT/HS256-signing venue (quote-first
// symbols such as KRW-BTC, market orders split into "price" vs "market"
// ord_type).
package venuea

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// generateJWT builds the Authorization header value for a signed request,
// following the venue's JWT contract exactly: header+payload are
// base64url-encoded without padding, payload carries an access_key, a
// random nonce, and (when params are present) a SHA-512 query hash.
func generateJWT(accessKey, secretKey string, params map[string]string) (string, error) {
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	payload := map[string]interface{}{
		"access_key": accessKey,
		"nonce":      uuid.New().String(),
	}
	if len(params) > 0 {
		payload["query_hash"] = buildQueryHash(params)
		payload["query_hash_alg"] = "SHA512"
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	signingInput := b64url(headerJSON) + "." + b64url(payloadJSON)
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(signingInput))
	signature := mac.Sum(nil)

	token := signingInput + "." + b64url(signature)
	return "Bearer " + token, nil
}

// buildQueryHash hashes the sorted, urlencoded query string with SHA-512,
// matching the venue's own hashing of its query parameters.
func buildQueryHash(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, params[k])
	}
	query := values.Encode()

	sum := sha512.Sum512([]byte(query))
	return fmt.Sprintf("%x", sum)
}

// b64url is base64 URL encoding without padding.
func b64url(b []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
}

// signedHeaders adapts generateJWT to the common.SignedHeaders hook shape.
func signedHeaders(_ context.Context, _ string, _ string, params map[string]string, secretKey, accessKey string) (map[string]string, error) {
	token, err := generateJWT(accessKey, secretKey, params)
	if err != nil {
		return nil, err
	}
	return map[string]string{"Authorization": token}, nil
}
