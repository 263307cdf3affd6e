package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// clientConfig carries client-side configuration. Everything here is a
// local preference, not part of the API contract, so it comes from the
// environment with sensible defaults.
type clientConfig struct {
	APIAddress     string        `envconfig:"API_ADDRESS" default:"http://localhost:8000/api/v1"` // nolint: lll
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	Insecure       bool          `envconfig:"INSECURE"`
	Debug          bool          `envconfig:"DEBUG"`
}

func getClientConfig() (clientConfig, error) {
	config := clientConfig{}
	if err := envconfig.Process("testhub", &config); err != nil {
		return config, errors.Wrap(
			err,
			"error reading client configuration from environment",
		)
	}
	return config, nil
}
