package venuea

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildQueryHashIsStableUnderKeyOrder(t *testing.T) {
	a := buildQueryHash(map[string]string{"markets": "KRW-BTC", "count": "10"})
	b := buildQueryHash(map[string]string{"count": "10", "markets": "KRW-BTC"})
	if a != b {
		t.Fatalf("query hash must not depend on map iteration order: %s != %s", a, b)
	}
}

func TestGenerateJWTStructureAndSignature(t *testing.T) {
	accessKey := "test-access-key"
	secretKey := "test-secret-key"
	params := map[string]string{"markets": "KRW-BTC"}

	token, err := generateJWT(accessKey, secretKey, params)
	if err != nil {
		t.Fatalf("generateJWT returned error: %v", err)
	}

	if !strings.HasPrefix(token, "Bearer ") {
		t.Fatalf("token must be prefixed with 'Bearer ': %q", token)
	}
	raw := strings.TrimPrefix(token, "Bearer ")

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("expected header.payload.signature, got %d parts", len(parts))
	}

	headerJSON, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(parts[0])
	if err != nil {
		t.Fatalf("failed to decode header: %v", err)
	}
	var header map[string]string
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		t.Fatalf("failed to unmarshal header: %v", err)
	}
	if header["alg"] != "HS256" || header["typ"] != "JWT" {
		t.Fatalf("unexpected header: %+v", header)
	}

	payloadJSON, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(parts[1])
	if err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	if payload["access_key"] != accessKey {
		t.Fatalf("payload access_key = %v, want %v", payload["access_key"], accessKey)
	}
	if payload["nonce"] == "" || payload["nonce"] == nil {
		t.Fatalf("payload must carry a non-empty nonce")
	}
	if payload["query_hash"] != buildQueryHash(params) {
		t.Fatalf("payload query_hash does not match buildQueryHash(params)")
	}
	if payload["query_hash_alg"] != "SHA512" {
		t.Fatalf("payload query_hash_alg = %v, want SHA512", payload["query_hash_alg"])
	}

	signingInput := parts[0] + "." + parts[1]
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(signingInput))
	expectedSig := b64url(mac.Sum(nil))
	if parts[2] != expectedSig {
		t.Fatalf("signature mismatch: got %s, want %s", parts[2], expectedSig)
	}
}

func TestGenerateJWTOmitsQueryHashWhenNoParams(t *testing.T) {
	token, err := generateJWT("ak", "sk", nil)
	if err != nil {
		t.Fatalf("generateJWT returned error: %v", err)
	}
	raw := strings.TrimPrefix(token, "Bearer ")
	parts := strings.Split(raw, ".")
	payloadJSON, _ := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(parts[1])
	var payload map[string]interface{}
	json.Unmarshal(payloadJSON, &payload)
	if _, ok := payload["query_hash"]; ok {
		t.Fatalf("query_hash must be omitted when there are no params")
	}
}

func TestSignedHeadersSetsAuthorization(t *testing.T) {
	headers, err := signedHeaders(context.Background(), "GET", "/v1/accounts", nil, "sk", "ak")
	if err != nil {
		t.Fatalf("signedHeaders returned error: %v", err)
	}
	if !strings.HasPrefix(headers["Authorization"], "Bearer ") {
		t.Fatalf("expected Authorization header to be a Bearer token, got %q", headers["Authorization"])
	}
}
