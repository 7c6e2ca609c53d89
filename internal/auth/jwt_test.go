package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", 60)
	require.NoError(t, err)

	sub, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", 60)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestWithUserValidToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", 60)
	require.NoError(t, err)

	var got string
	h := WithUser(testSecret, func(w http.ResponseWriter, r *http.Request) {
		got = UserID(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	h(httptest.NewRecorder(), r)

	assert.Equal(t, "42", got)
}

func TestWithUserMissingTokenFallsBackToDemo(t *testing.T) {
	var got string
	h := WithUser(testSecret, func(w http.ResponseWriter, r *http.Request) {
		got = UserID(r.Context())
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, DemoUserID, got)
}

func TestWithUserBadTokenFallsBackToDemo(t *testing.T) {
	var got string
	h := WithUser(testSecret, func(w http.ResponseWriter, r *http.Request) {
		got = UserID(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bogus")
	h(httptest.NewRecorder(), r)

	assert.Equal(t, DemoUserID, got)
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	assert.Equal(t, DemoUserID, UserID(context.Background()))
}
