package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func newValidator(t *testing.T) *auth.JWTValidator {
	t.Helper()
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "storefront-backend",
	})
	require.NoError(t, err)
	return validator
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	generator, err := auth.NewJWTGenerator(auth.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "storefront-backend",
	}, time.Hour)
	require.NoError(t, err)

	token, err := generator.GenerateToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(newValidator(t), zap.NewNop())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run without a token")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	handler := Authenticate(newValidator(t), zap.NewNop())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run with an invalid token")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateAttachesUserContext(t *testing.T) {
	var seen *auth.UserContext
	handler := Authenticate(newValidator(t), zap.NewNop())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			require.NoError(t, err)
			seen = user
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "user"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.UserID)
	assert.Equal(t, "user", seen.Role)
}

func TestAuthenticateEnforcesIPRateLimit(t *testing.T) {
	handler := Authenticate(newValidator(t), zap.NewNop())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	// The IP limiter allows 100 requests per minute. Everything past the
	// window should come back 429 before token validation runs.
	var last int
	for i := 0; i < 101; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil)
		req.RemoteAddr = "198.51.100.7:1234"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminOnly()(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req = req.WithContext(auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "u1", Role: "user"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req = req.WithContext(auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "a1", Role: "admin"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
