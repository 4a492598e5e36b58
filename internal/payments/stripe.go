// Package payments builds the Stripe Connect onboarding surface. Charging and
// payout flows live on the payment vendor; this side only links accounts.
package payments

import (
	"errors"
	"net/url"
)

const connectAuthorizeURL = "https://connect.stripe.com/oauth/authorize"

// ConnectConfig carries the platform's Stripe Connect OAuth settings.
type ConnectConfig struct {
	ClientID    string // Stripe platform client id (ca_...)
	RedirectURL string // callback registered on the Stripe dashboard
}

// ConnectOAuthLink returns the onboarding URL a presenter visits to link a
// Stripe account. State is round-tripped through the OAuth flow so the
// callback can tie the linked account back to the user.
func ConnectOAuthLink(cfg ConnectConfig, state string) (string, error) {
	if cfg.ClientID == "" {
		return "", errors.New("stripe connect client id is not configured")
	}
	if state == "" {
		return "", errors.New("state is required")
	}

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", cfg.ClientID)
	q.Set("scope", "read_write")
	q.Set("state", state)
	if cfg.RedirectURL != "" {
		q.Set("redirect_uri", cfg.RedirectURL)
	}
	return connectAuthorizeURL + "?" + q.Encode(), nil
}
