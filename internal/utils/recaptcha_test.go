package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecaptchaBlankTokenShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	v := NewRecaptchaVerifier("secret").(*googleRecaptchaVerifier)
	v.verifyURL = srv.URL

	if v.Verify(context.Background(), "   ") {
		t.Fatal("Expected blank token to fail verification")
	}
	if called {
		t.Fatal("Blank token should not reach the verify endpoint")
	}
}

func TestRecaptchaVerify(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"success", `{"success": true}`, true},
		{"failure", `{"success": false}`, false},
		{"garbage body", `not-json`, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					t.Fatalf("Failed to parse form: %v", err)
				}
				if r.PostFormValue("secret") != "secret" || r.PostFormValue("response") != "tok" {
					t.Fatalf("Unexpected form values: %v", r.PostForm)
				}
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()

			v := NewRecaptchaVerifier("secret").(*googleRecaptchaVerifier)
			v.verifyURL = srv.URL

			if got := v.Verify(context.Background(), "tok"); got != c.want {
				t.Fatalf("Verify = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRecaptchaTransportFailureIsFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the request fails

	v := NewRecaptchaVerifier("secret").(*googleRecaptchaVerifier)
	v.verifyURL = srv.URL

	if v.Verify(context.Background(), "tok") {
		t.Fatal("Expected transport failure to count as failed verification")
	}
}
