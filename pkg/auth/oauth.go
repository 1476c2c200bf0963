package auth

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

const xdgAppName = "dailies"

// BearerClient returns an *http.Client that sends token as an
// "Authorization: Bearer" header on every request. A non-nil base client is
// used as the underlying transport, which lets tests point at httptest servers.
func BearerClient(ctx context.Context, token string, base *http.Client) *http.Client {
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}

// GetXdgHome returns the directory holding the tool's configuration.
func GetXdgHome() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}
