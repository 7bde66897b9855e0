// Package auth drives the three-legged OAuth exchange that produces the
// access token every Link API request is signed with, and builds the
// signing http.Client the communicator sends requests through.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
	operalink "github.com/operasoftware/go-operalink"
	"github.com/pkg/errors"
)

// Handler holds the consumer credentials and whatever tokens have been
// obtained so far. It is not safe for concurrent use.
type Handler struct {
	config        *oauth1.Config
	requestToken  string
	requestSecret string
	accessToken   *oauth1.Token
}

// New returns a Handler for the production Opera OAuth service. callback is
// where the user lands after authorizing; empty means out-of-band ("oob"),
// in which case the user is shown a verifier code to paste back.
func New(consumerKey, consumerSecret, callback string) *Handler {
	return NewWithURL(consumerKey, consumerSecret, callback, operalink.DefaultOAuthURL)
}

// NewWithURL is New against a different OAuth service, for testing.
func NewWithURL(consumerKey, consumerSecret, callback, oauthURL string) *Handler {
	if callback == "" {
		callback = "oob"
	}
	base := strings.TrimSuffix(oauthURL, "/") + "/"
	return &Handler{
		config: &oauth1.Config{
			ConsumerKey:    consumerKey,
			ConsumerSecret: consumerSecret,
			CallbackURL:    callback,
			Endpoint: oauth1.Endpoint{
				RequestTokenURL: base + "request_token",
				AuthorizeURL:    base + "authorize",
				AccessTokenURL:  base + "access_token",
			},
		},
	}
}

// SetRequestToken installs a previously obtained request token, e.g. when
// the authorization redirect is handled by a different process.
func (h *Handler) SetRequestToken(token, secret string) {
	h.requestToken = token
	h.requestSecret = secret
}

// SetAccessToken installs a stored access token, skipping the handshake.
func (h *Handler) SetAccessToken(token, secret string) {
	h.accessToken = oauth1.NewToken(token, secret)
}

// Token returns the current access token, nil if none has been obtained.
func (h *Handler) Token() *oauth1.Token {
	return h.accessToken
}

// AuthorizationURL fetches a request token if none is set and returns the
// URL the user must visit to approve it.
func (h *Handler) AuthorizationURL() (string, error) {
	if h.requestToken == "" {
		token, secret, err := h.config.RequestToken()
		if err != nil {
			return "", errors.Wrap(err, "fetching request token")
		}
		h.requestToken = token
		h.requestSecret = secret
	}
	u, err := h.config.AuthorizationURL(h.requestToken)
	if err != nil {
		return "", errors.Wrap(err, "building authorization URL")
	}
	return u.String(), nil
}

// AccessToken exchanges the approved request token and the verifier the
// user was given for the long-lived access token.
func (h *Handler) AccessToken(verifier string) (*oauth1.Token, error) {
	if h.requestToken == "" {
		return nil, errors.New("no request token has been obtained")
	}
	token, secret, err := h.config.AccessToken(h.requestToken, h.requestSecret, verifier)
	if err != nil {
		return nil, errors.Wrap(err, "exchanging request token for access token")
	}
	h.accessToken = oauth1.NewToken(token, secret)
	return h.accessToken, nil
}

// Client returns an http.Client that signs every request with the access
// token, suitable for Communicator.SetHTTPClient.
func (h *Handler) Client(ctx context.Context) (*http.Client, error) {
	if h.accessToken == nil {
		return nil, errors.New("no access token has been set")
	}
	return h.config.Client(ctx, h.accessToken), nil
}
