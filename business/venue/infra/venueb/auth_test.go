package venueb

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"testing"
)

func withFixedNonce(nonce string, fn func()) {
	orig := nonceFunc
	nonceFunc = func() string { return nonce }
	defer func() { nonceFunc = orig }()
	fn()
}

func TestSignProducesExpectedDigestAndHeaders(t *testing.T) {
	const (
		endpoint  = "/trade/market_buy"
		accessKey = "test-access-key"
		secretKey = "test-secret-key"
		nonce     = "1700000000000"
	)
	params := map[string]string{"order_currency": "BTC", "payment_currency": "KRW", "units": "0.01"}

	var headers map[string]string
	withFixedNonce(nonce, func() {
		headers = sign(endpoint, params, accessKey, secretKey)
	})

	query := encodeParams(params)
	signingStr := endpoint + "\x00" + query + "\x00" + nonce
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write([]byte(signingStr))
	hexDigest := fmt.Sprintf("%x", mac.Sum(nil))
	expectedSig := base64.StdEncoding.EncodeToString([]byte(hexDigest))

	if headers["Api-Sign"] != expectedSig {
		t.Fatalf("Api-Sign = %s, want %s", headers["Api-Sign"], expectedSig)
	}
	if headers["Api-Key"] != accessKey {
		t.Fatalf("Api-Key = %s, want %s", headers["Api-Key"], accessKey)
	}
	if headers["Api-Nonce"] != nonce {
		t.Fatalf("Api-Nonce = %s, want %s", headers["Api-Nonce"], nonce)
	}
	if headers["Content-Type"] != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected Content-Type: %s", headers["Content-Type"])
	}
}

func TestEncodeParamsIsSortedByKey(t *testing.T) {
	a := encodeParams(map[string]string{"b": "2", "a": "1", "c": "3"})
	want := "a=1&b=2&c=3"
	if a != want {
		t.Fatalf("encodeParams = %s, want %s", a, want)
	}
}

func TestSignIsDeterministicForSameInputs(t *testing.T) {
	params := map[string]string{"currency": "ALL"}
	var h1, h2 map[string]string
	withFixedNonce("123", func() {
		h1 = sign("/info/balance", params, "ak", "sk")
		h2 = sign("/info/balance", params, "ak", "sk")
	})
	if h1["Api-Sign"] != h2["Api-Sign"] {
		t.Fatalf("sign must be deterministic given identical nonce and inputs")
	}
}

func TestSignedHeadersSetsApiKeyFromAccessKey(t *testing.T) {
	headers, err := signedHeaders(context.Background(), "POST", "/trade/cancel", map[string]string{"order_id": "1"}, "sk", "ak")
	if err != nil {
		t.Fatalf("signedHeaders returned error: %v", err)
	}
	if headers["Api-Key"] != "ak" {
		t.Fatalf("expected Api-Key to be set from accessKey")
	}
}
