package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/request_token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, "oauth_token=rtok&oauth_token_secret=rsec&oauth_callback_confirmed=true")
	})
	mux.HandleFunc("/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, "oauth_token=atok&oauth_token_secret=asec")
	})
	return httptest.NewServer(mux)
}

func TestAuthorizationURL(t *testing.T) {
	assert := assert.New(t)

	server := newOAuthServer(t)
	defer server.Close()

	h := NewWithURL("key", "secret", "", server.URL)
	authURL, err := h.AuthorizationURL()
	require.NoError(t, err)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal("/authorize", u.Path)
	assert.Equal("rtok", u.Query().Get("oauth_token"))
}

func TestAccessTokenExchange(t *testing.T) {
	assert := assert.New(t)

	server := newOAuthServer(t)
	defer server.Close()

	h := NewWithURL("key", "secret", "", server.URL)

	_, err := h.AccessToken("verifier")
	assert.Error(err, "exchange before obtaining a request token must fail")

	h.SetRequestToken("rtok", "rsec")
	token, err := h.AccessToken("verifier")
	require.NoError(t, err)
	assert.Equal("atok", token.Token)
	assert.Equal("asec", token.TokenSecret)
	assert.Equal(token, h.Token())
}

func TestClientRequiresAccessToken(t *testing.T) {
	h := New("key", "secret", "")
	_, err := h.Client(context.Background())
	assert.Error(t, err)

	h.SetAccessToken("atok", "asec")
	client, err := h.Client(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
}
