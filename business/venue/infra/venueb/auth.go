// Package venueb implements the HMAC-SHA512-signing venue (base-first
// symbols such as BTC_KRW, a numeric "0000" success status folded into
// every response body, signed non-GET calls that fold the endpoint into
// their own form params).
package venueb

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"time"
)

// nonceFunc is overridable in tests to produce a deterministic nonce.
var nonceFunc = func() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}

// sign computes the venue's signature headers. The signing string is
// endpoint\0query\0nonce; the HMAC-SHA512 digest is hex-encoded, and that
// hex string's ASCII bytes are then base64-encoded — a double encoding
// that must be reproduced exactly, not "helpfully" simplified to a direct
// base64 of the raw digest.
func sign(endpoint string, params map[string]string, accessKey, secretKey string) map[string]string {
	nonce := nonceFunc()
	query := encodeParams(params)
	signingStr := endpoint + "\x00" + query + "\x00" + nonce

	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write([]byte(signingStr))
	hexDigest := fmt.Sprintf("%x", mac.Sum(nil))

	signature := base64.StdEncoding.EncodeToString([]byte(hexDigest))

	return map[string]string{
		"Api-Key":      accessKey,
		"Api-Sign":     signature,
		"Api-Nonce":    nonce,
		"Content-Type": "application/x-www-form-urlencoded",
	}
}

// encodeParams mirrors Python's urlencode(dict): keys in insertion order
// are not guaranteed in Go maps, so this sorts for determinism, which
// matches the form body this gateway itself sends (sorted by key).
func encodeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, params[k])
	}
	return values.Encode()
}

// signedHeaders adapts sign to the common.SignedHeaders hook shape.
func signedHeaders(_ context.Context, _ string, endpoint string, params map[string]string, secretKey, accessKey string) (map[string]string, error) {
	return sign(endpoint, params, accessKey, secretKey), nil
}
