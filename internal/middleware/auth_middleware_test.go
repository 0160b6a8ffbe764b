package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}

	var gotPrincipal string
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal, _ = r.Context().Value(ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	}))

	validClaims := jwt.MapClaims{
		"sub": "admin@jj",
		"iss": TokenIssuer,
		"exp": float64(time.Now().Add(time.Hour).Unix()),
	}

	t.Run("valid token passes and exposes principal", func(t *testing.T) {
		gotPrincipal = ""
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, key, validClaims))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPrincipal != "admin@jj" {
			t.Fatalf("Expected principal 'admin@jj', got %q", gotPrincipal)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub": "admin@jj",
			"iss": TokenIssuer,
			"exp": float64(time.Now().Add(-time.Hour).Unix()),
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, key, claims))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong issuer is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub": "admin@jj",
			"iss": "someone-else",
			"exp": float64(time.Now().Add(time.Hour).Unix()),
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, key, claims))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("Failed to generate RSA key: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, otherKey, validClaims))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", rec.Code)
		}
	})
}
