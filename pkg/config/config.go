package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DBConfig struct {
	// DSN enables the webhook receipt log. Empty disables it.
	DSN string `mapstructure:"dsn"`
}

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	Env         Env             `mapstructure:"env"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DBConfig        `mapstructure:"database"`
	Worldpay    WorldpayConfig  `mapstructure:"worldpay"`
	Pusher      PusherConfig    `mapstructure:"pusher"`
	Broadcast   BroadcastConfig `mapstructure:"broadcast"`
	Webhook     WebhookConfig   `mapstructure:"webhook"`
	Client      ClientConfig    `mapstructure:"client"`
	MetricsAddr string          `mapstructure:"metrics_addr"`
}

// WorldpayConfig holds the provider endpoint. APIKey and MerchantID are the
// file/APP_ fallback; WORLDPAY_API_KEY and WORLDPAY_MID win at request time.
type WorldpayConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	CallerID   string        `mapstructure:"caller_id"`
	APIKey     string        `mapstructure:"api_key" env:"WORLDPAY_API_KEY"`
	MerchantID string        `mapstructure:"merchant_id" env:"WORLDPAY_MID"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type PusherConfig struct {
	AppID   string `mapstructure:"app_id" env:"PUSHER_APP_ID"`
	Key     string `mapstructure:"key" env:"PUSHER_KEY"`
	Secret  string `mapstructure:"secret" env:"PUSHER_SECRET"`
	Cluster string `mapstructure:"cluster" env:"PUSHER_CLUSTER"`
}

// Complete reports whether the server-side publish credentials are all set.
func (p PusherConfig) Complete() bool {
	return p.AppID != "" && p.Key != "" && p.Secret != ""
}

type BroadcastDriver string

const (
	BroadcastDriverPusher BroadcastDriver = "pusher"
	BroadcastDriverRedis  BroadcastDriver = "redis"
	BroadcastDriverMemory BroadcastDriver = "memory"
)

type BroadcastConfig struct {
	Driver  BroadcastDriver `mapstructure:"driver"`
	Channel string          `mapstructure:"channel"`
	Event   string          `mapstructure:"event"`
	Redis   RedisConfig     `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WebhookConfig struct {
	// SigningSecret turns on HMAC-SHA256 body verification when non-empty.
	SigningSecret   string `mapstructure:"signing_secret"`
	SignatureHeader string `mapstructure:"signature_header"`
}

// ClientConfig configures the merchant console.
type ClientConfig struct {
	ServerURL string `mapstructure:"server_url"`
	DataFile  string `mapstructure:"data_file"`
}

func New() (*Config, error) {
	v := viper.New()
	// Allow overriding config file via env:
	// - APP_CONFIG_FILE: absolute or relative file path (e.g., /etc/app/prod.yaml)
	// - APP_CONFIG_NAME: config base name without extension (default: "config")
	if file := os.Getenv("APP_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		cfgName := os.Getenv("APP_CONFIG_NAME")
		if cfgName == "" {
			cfgName = "config"
		}
		v.SetConfigName(cfgName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		_ = err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyProcessEnv(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("database.dsn", "")
	v.SetDefault("metrics_addr", ":9090")

	v.SetDefault("worldpay.base_url", "https://apis.stage.worldpay.com/text-to-pay")
	v.SetDefault("worldpay.caller_id", "text-to-pay-poc")
	v.SetDefault("worldpay.timeout", 0)

	v.SetDefault("pusher.cluster", "us2")

	v.SetDefault("broadcast.driver", string(BroadcastDriverPusher))
	v.SetDefault("broadcast.channel", "payment-updates")
	v.SetDefault("broadcast.event", "payment-updated")
	v.SetDefault("broadcast.redis.addr", "localhost:6379")

	v.SetDefault("webhook.signature_header", "X-Signature")

	v.SetDefault("client.server_url", "http://localhost:3000")
	v.SetDefault("client.data_file", "texttopay.db")
}

// applyProcessEnv overlays the conventional provider variable names
// (WORLDPAY_*, PUSHER_*) on top of whatever viper resolved.
func applyProcessEnv(c *Config) error {
	wp := c.Worldpay
	if err := env.Parse(&wp); err != nil {
		return fmt.Errorf("parse worldpay env: %w", err)
	}
	c.Worldpay = wp

	p := c.Pusher
	if err := env.Parse(&p); err != nil {
		return fmt.Errorf("parse pusher env: %w", err)
	}
	if p.Cluster == "" {
		p.Cluster = "us2"
	}
	c.Pusher = p
	return nil
}

var Module = fx.Options(
	fx.Provide(New),
)
