package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")
	t.Setenv("WORLDPAY_API_KEY", "")
	t.Setenv("WORLDPAY_MID", "")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, EnvDev, c.Env)
	require.Equal(t, 3000, c.Server.Port)
	require.Equal(t, "https://apis.stage.worldpay.com/text-to-pay", c.Worldpay.BaseURL)
	require.Equal(t, "text-to-pay-poc", c.Worldpay.CallerID)
	require.Equal(t, BroadcastDriverPusher, c.Broadcast.Driver)
	require.Equal(t, "payment-updates", c.Broadcast.Channel)
	require.Equal(t, "payment-updated", c.Broadcast.Event)
	require.Equal(t, "us2", c.Pusher.Cluster)
	require.Empty(t, c.Database.DSN)
}

func TestNew_ProcessEnvOverridesProviderCredentials(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")
	t.Setenv("APP_WORLDPAY_API_KEY", "from-app-env")
	t.Setenv("WORLDPAY_API_KEY", "from-process-env")
	t.Setenv("WORLDPAY_MID", "mid-1")
	t.Setenv("PUSHER_APP_ID", "app")
	t.Setenv("PUSHER_KEY", "key")
	t.Setenv("PUSHER_SECRET", "secret")
	t.Setenv("PUSHER_CLUSTER", "eu")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, "from-process-env", c.Worldpay.APIKey)
	require.Equal(t, "mid-1", c.Worldpay.MerchantID)
	require.Equal(t, "eu", c.Pusher.Cluster)
	require.True(t, c.Pusher.Complete())
}

func TestPusherConfig_Complete(t *testing.T) {
	require.False(t, PusherConfig{Key: "k", Secret: "s"}.Complete())
	require.True(t, PusherConfig{AppID: "a", Key: "k", Secret: "s"}.Complete())
}
