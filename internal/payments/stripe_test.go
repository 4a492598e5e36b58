package payments_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocallq/vocallq/internal/payments"
)

func TestConnectOAuthLink(t *testing.T) {
	assert := assert.New(t)

	link, err := payments.ConnectOAuthLink(payments.ConnectConfig{
		ClientID:    "ca_test123",
		RedirectURL: "https://app.vocallq.dev/stripe/callback",
	}, "user-42")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal("connect.stripe.com", u.Host)
	assert.Equal("/oauth/authorize", u.Path)

	q := u.Query()
	assert.Equal("code", q.Get("response_type"))
	assert.Equal("ca_test123", q.Get("client_id"))
	assert.Equal("read_write", q.Get("scope"))
	assert.Equal("user-42", q.Get("state"))
	assert.Equal("https://app.vocallq.dev/stripe/callback", q.Get("redirect_uri"))
}

func TestConnectOAuthLinkRequiresConfig(t *testing.T) {
	assert := assert.New(t)

	_, err := payments.ConnectOAuthLink(payments.ConnectConfig{}, "user-42")
	assert.Error(err)

	_, err = payments.ConnectOAuthLink(payments.ConnectConfig{ClientID: "ca_test123"}, "")
	assert.Error(err)
}
