package juno

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

var validate = validator.New()

// Config holds the credentials issued in the Juno panel.
// Fields are read from JUNO_* environment variables by LoadConfig.
type Config struct {
	ResourceToken string `envconfig:"RESOURCE_TOKEN" validate:"required"`
	ClientID      string `envconfig:"CLIENT_ID" validate:"required"`
	ClientSecret  string `envconfig:"CLIENT_SECRET" validate:"required"`

	Sandbox bool          `envconfig:"SANDBOX"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s" validate:"gte=0"`

	// WebhookSecret is the secret returned by CreateWebhook, used to verify deliveries.
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`

	Debug bool `envconfig:"DEBUG"` // Логировать запросы в банк в виде curl
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("juno", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Environment returns the hosts selected by the Sandbox flag.
func (c Config) Environment() Environment {
	if c.Sandbox {
		return SandboxEnvironment
	}
	return ProductionEnvironment
}
