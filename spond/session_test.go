package spond

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email": "user@example.com", "password": "hunter2"}`, string(body))
		_, _ = w.Write([]byte(`{"loginToken": "mocked-token"}`))
	}))
	defer server.Close()

	session := NewSession("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))
	err := session.Login(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "mocked-token", session.Token())
}

func TestLoginWithoutToken(t *testing.T) {
	mockResponse := `{"message": "invalid credentials"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	session := NewSession("user@example.com", "wrong", WithAPIURL(server.URL+"/"))
	err := session.Login(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, err.Error(), mockResponse)
	assert.Empty(t, session.Token())
}

func TestAuthHeaders(t *testing.T) {
	session := NewSession("user@example.com", "hunter2")

	headers := session.AuthHeaders()
	assert.Equal(t, "application/json", headers["content-type"])
	assert.Equal(t, "Bearer null", headers["Authorization"])

	session.SetToken("abc123")
	assert.Equal(t, "Bearer abc123", session.AuthHeaders()["Authorization"])
}

func TestEnsureAuthLogsInOnce(t *testing.T) {
	loginCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loginCalls++
		_, _ = w.Write([]byte(`{"loginToken": "mocked-token"}`))
	}))
	defer server.Close()

	session := NewSession("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))

	require.NoError(t, session.EnsureAuth(context.Background()))
	require.NoError(t, session.EnsureAuth(context.Background()))
	assert.Equal(t, 1, loginCalls)
}

func TestSetCredentials(t *testing.T) {
	session := NewSession("old@example.com", "old")
	session.SetCredentials("new@example.com", "new")

	assert.Equal(t, "new@example.com", session.Email())

	// Rotation does not clear the token on its own.
	session.SetToken("abc123")
	session.SetCredentials("third@example.com", "third")
	assert.Equal(t, "abc123", session.Token())
}

func TestDefaultAPIURL(t *testing.T) {
	session := NewSession("user@example.com", "hunter2")
	assert.Equal(t, "https://api.spond.com/core/v1/", session.APIURL())
}
