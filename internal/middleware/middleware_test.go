package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"devconnect/internal/config"
)

type stubValidator struct {
	userID string
	err    error
}

func (s *stubValidator) ValidateToken(tokenString string) (string, error) {
	return s.userID, s.err
}

func okHandler(t *testing.T, expectedUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, expectedUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_NoToken(t *testing.T) {
	handler := Auth(&stubValidator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("запрос не должен был пройти дальше")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "No token, authorization denied")
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &stubValidator{err: errors.New("bad token")}
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("запрос не должен был пройти дальше")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("x-auth-token", "garbage")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Token is not valid")
}

func TestAuth_ValidToken(t *testing.T) {
	validator := &stubValidator{userID: "user-123"}
	handler := Auth(validator)(okHandler(t, "user-123"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("x-auth-token", "valid-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuth_BearerFallback(t *testing.T) {
	validator := &stubValidator{userID: "user-123"}
	handler := Auth(validator)(okHandler(t, "user-123"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit_BurstExceeded(t *testing.T) {
	limit := RateLimit(config.RateLimit{RequestsPerMinute: 1, Burst: 2})
	handler := limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestRateLimit_PerIP(t *testing.T) {
	limit := RateLimit(config.RateLimit{RequestsPerMinute: 1, Burst: 1})
	handler := limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	first.RemoteAddr = "10.0.0.1:12345"
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, first)

	// другой IP не делит лимит с первым
	second := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	second.RemoteAddr = "10.0.0.2:12345"
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, second)

	assert.Equal(t, http.StatusOK, rr1.Code)
	assert.Equal(t, http.StatusOK, rr2.Code)
}
