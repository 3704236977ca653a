package gateway

import (
	"github.com/caarlos0/env/v11"

	"github.com/fatflowers/texttopay/pkg/apperr"
	"github.com/fatflowers/texttopay/pkg/config"
)

type Credentials struct {
	APIKey     string `env:"WORLDPAY_API_KEY"`
	MerchantID string `env:"WORLDPAY_MID"`
}

func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.MerchantID != ""
}

// CredentialSource resolves provider credentials. It is called once per
// outbound request.
type CredentialSource func() (Credentials, error)

// EnvCredentials reads WORLDPAY_API_KEY and WORLDPAY_MID on every call,
// falling back to the configured values for whichever is unset.
func EnvCredentials(fallback config.WorldpayConfig) CredentialSource {
	return func() (Credentials, error) {
		c := Credentials{APIKey: fallback.APIKey, MerchantID: fallback.MerchantID}
		if err := env.Parse(&c); err != nil {
			return Credentials{}, apperr.Configuration("read worldpay credentials: %v", err)
		}
		return c, nil
	}
}

// StaticCredentials always returns c.
func StaticCredentials(c Credentials) CredentialSource {
	return func() (Credentials, error) { return c, nil }
}
