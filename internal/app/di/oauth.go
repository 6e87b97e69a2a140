package di

import (
	"context"
	"log/slog"
	"net/http"

	"commerce_backend/internal/feature/auth/adapters/oauth"
	"commerce_backend/internal/feature/auth/adapters/oauth/apple"
	"commerce_backend/internal/feature/auth/adapters/oauth/google"
	"commerce_backend/internal/platform/config"
)

// NewOAuthRegistry builds the provider registry from configuration.
// A provider is registered only when its credentials are present; requests
// for anything else surface as "not configured" at the usecase layer.
func NewOAuthRegistry(ctx context.Context, cfg *config.Config, client *http.Client) *oauth.Registry {
	registry := oauth.NewRegistry()

	if cfg.GoogleOAuthEnabled() {
		registry.Register(google.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, client))
		slog.Info("oauth provider registered", "provider", "google")
	}

	if cfg.AppleOAuthEnabled() {
		// Apple needs OIDC discovery at startup to fetch signing keys.
		provider, err := apple.New(ctx, cfg.AppleClientID, cfg.AppleClientSecret, cfg.AppleRedirectURL, client)
		if err != nil {
			slog.Error("apple oauth provider init failed; apple login disabled", "error", err)
		} else {
			registry.Register(provider)
			slog.Info("oauth provider registered", "provider", "apple")
		}
	}

	return registry
}
