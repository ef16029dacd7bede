package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/accountd/accountd-go/internal/crypto"
)

const testSecret = "test-secret"

func gatedHandler(t *testing.T, gotSubject *string) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := SubjectFromContext(r.Context())
		if !ok {
			t.Error("subject missing from context after successful validation")
		}
		*gotSubject = subject
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(testSecret)(next)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	var subject string
	h := gatedHandler(t, &subject)

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthNotBearer(t *testing.T) {
	var subject string
	h := gatedHandler(t, &subject)

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	var subject string
	h := gatedHandler(t, &subject)

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	var subject string
	h := gatedHandler(t, &subject)

	token, err := crypto.GenerateToken("64a1f0c2e1b2c3d4e5f60718", testSecret, -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	var subject string
	h := gatedHandler(t, &subject)

	token, err := crypto.GenerateToken("64a1f0c2e1b2c3d4e5f60718", testSecret, 300*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if subject != "64a1f0c2e1b2c3d4e5f60718" {
		t.Errorf("subject = %q, want %q", subject, "64a1f0c2e1b2c3d4e5f60718")
	}
}
