package upstream

import (
	"context"

	"github.com/sangkips/reservation-invoicing/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// BearerCredential wraps a caller's access token. An empty token yields a
// nil credential.
func BearerCredential(token string) oauth2.TokenSource {
	if token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// ServiceCredential returns the service account credential used for
// background lookups, or nil when none is configured.
func ServiceCredential(ctx context.Context, cfg *config.UpstreamConfig) oauth2.TokenSource {
	if !cfg.HasServiceAccount() {
		return nil
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	return cc.TokenSource(ctx)
}
