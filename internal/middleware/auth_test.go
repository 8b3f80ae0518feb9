package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"achieveit-backend/internal/auth"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context())))
	})
}

func TestJWTAuth_MissingToken(t *testing.T) {
	t.Parallel()

	handler := JWTAuth(testSecret)(protectedEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	handler := JWTAuth(testSecret)(protectedEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "garbage")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := auth.IssueToken("u1", []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	handler := JWTAuth(testSecret)(protectedEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", tok)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tok, err := auth.IssueToken("user-42", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	handler := JWTAuth(testSecret)(protectedEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", tok)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "user-42", resp.Body.String())
}

func TestJWTAuth_BearerPrefixAccepted(t *testing.T) {
	t.Parallel()

	tok, err := auth.IssueToken("user-42", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	handler := JWTAuth(testSecret)(protectedEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "user-42", resp.Body.String())
}
