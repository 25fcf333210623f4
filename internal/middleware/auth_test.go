package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func callAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *UserClaims) {
	t.Helper()
	var seen *UserClaims
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uc, ok := GetUserFromContext(r); ok {
			seen = &uc
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthAcceptsValidToken(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)

	token := signToken(t, jwt.MapClaims{
		"user_id":    "u1",
		"email":      "staff@bincycle.com.au",
		"role":       "staff",
		"account_id": "ACC-001",
	})

	rec, seen := callAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.UserID)
	assert.Equal(t, "staff", seen.Role)
	require.NotNil(t, seen.AccountID)
	assert.Equal(t, "ACC-001", *seen.AccountID)
}

func TestAuthRejectsTokenMissingIdentityClaims(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)

	// Validly signed but no user_id: must come back 401, never reach the
	// handler, never panic.
	token := signToken(t, jwt.MapClaims{
		"email": "staff@bincycle.com.au",
		"role":  "staff",
	})

	rec, seen := callAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)

	for _, header := range []string{"", "Bearer", "Token abc", "garbage"} {
		rec, _ := callAuth(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}
