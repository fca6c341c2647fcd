package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitas-games/hexpath/internal/config"
	"github.com/gravitas-games/hexpath/pkg/models"
)

const testIssuer = "test-login"

type fakeBlacklist struct {
	banned map[string]bool
	err    error
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, userID string) (bool, error) {
	return f.banned[userID], f.err
}

func newTestKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func testClaims(userID, permissions int64) Claims {
	return Claims{
		UserID:      userID,
		Username:    "user" + strconv.FormatInt(userID, 10),
		Email:       "user@example.com",
		Permissions: permissions,
		Activated:   1700000000,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func signToken(t *testing.T, key *ecdsa.PrivateKey, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodES256, &claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newTestValidator(key *ecdsa.PrivateKey, bl Blacklist) *JWTValidator {
	return &JWTValidator{issuer: testIssuer, publicKey: &key.PublicKey, blacklist: bl}
}

func TestValidateToken(t *testing.T) {
	key := newTestKey(t)
	v := newTestValidator(key, &fakeBlacklist{})

	client, err := v.ValidateToken(context.Background(), signToken(t, key, testClaims(42, models.PermEditMap)))
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if client.ID != "42" || client.Username != "user42" || !client.CanEditMap() {
		t.Fatalf("unexpected client %+v", client)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	key := newTestKey(t)
	other := newTestKey(t)

	wrongIssuer := testClaims(1, 0)
	wrongIssuer.Issuer = "someone-else"
	expired := testClaims(1, 0)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	inactive := testClaims(1, 0)
	inactive.Activated = 0
	banned := testClaims(1, 0)
	banned.Activated = -1

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: testIssuer}}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hmac: %v", err)
	}

	cases := map[string]string{
		"wrong issuer": signToken(t, key, wrongIssuer),
		"expired":      signToken(t, key, expired),
		"inactive":     signToken(t, key, inactive),
		"banned":       signToken(t, key, banned),
		"wrong key":    signToken(t, other, testClaims(1, 0)),
		"hmac":         hmac,
		"garbage":      "not.a.token",
	}
	v := newTestValidator(key, &fakeBlacklist{})
	for name, tok := range cases {
		if _, err := v.ValidateToken(context.Background(), tok); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestValidateTokenBlacklist(t *testing.T) {
	key := newTestKey(t)
	tok := signToken(t, key, testClaims(7, 0))

	v := newTestValidator(key, &fakeBlacklist{banned: map[string]bool{"7": true}})
	if _, err := v.ValidateToken(context.Background(), tok); err == nil {
		t.Fatalf("expected blacklisted token to be rejected")
	}

	// A blacklist outage does not block authentication.
	v = newTestValidator(key, &fakeBlacklist{err: errors.New("redis down")})
	if _, err := v.ValidateToken(context.Background(), tok); err != nil {
		t.Fatalf("unexpected error during blacklist outage: %v", err)
	}
}

func servePublicKey(t *testing.T, key *ecdsa.PrivateKey) *httptest.Server {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	body := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestNewJWTValidatorFetchesKey(t *testing.T) {
	key := newTestKey(t)
	ts := servePublicKey(t, key)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &config.Config{JWT: config.JWTConfig{Issuer: testIssuer, PublicKeyURL: ts.URL, PublicKeyRefreshHrs: 1}}
	v, err := NewJWTValidator(ctx, cfg, &fakeBlacklist{})
	if err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	if _, err := v.ValidateToken(ctx, signToken(t, key, testClaims(3, 0))); err != nil {
		t.Fatalf("token signed with fetched key rejected: %v", err)
	}
}

func TestRefreshPublicKeyErrors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()
	v := &JWTValidator{publicKeyURL: notFound.URL, httpClient: notFound.Client()}
	if err := v.RefreshPublicKey(context.Background()); err == nil {
		t.Fatalf("expected error for 404 key endpoint")
	}

	if _, err := parsePublicKey([]byte("no pem here")); err == nil {
		t.Fatalf("expected PEM decode error")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Sec-WebSocket-Protocol", "access_token, abc")
	if got := extractTokenFromHeader(r); got != "abc" {
		t.Fatalf("protocol token = %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Bearer xyz")
	if got := extractTokenFromHeader(r); got != "xyz" {
		t.Fatalf("bearer token = %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/ws?token=q1", nil)
	if got := extractTokenFromHeader(r); got != "q1" {
		t.Fatalf("query token = %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	if got := extractTokenFromHeader(r); got != "" {
		t.Fatalf("expected no token, got %q", got)
	}
}
