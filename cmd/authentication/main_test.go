package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestTokenHandler(t *testing.T) {
	handler := tokenHandler("test-secret", zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/token?user=maria", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", claims["sub"])
}

func TestEnvOr(t *testing.T) {
	t.Setenv("AUTH_TEST_KEY", "")
	assert.Equal(t, "fallback", envOr("AUTH_TEST_KEY", "fallback"))
	t.Setenv("AUTH_TEST_KEY", "set")
	assert.Equal(t, "set", envOr("AUTH_TEST_KEY", "fallback"))
}
