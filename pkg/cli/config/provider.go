package config

import (
	"time"

	"github.com/m-mizutani/ytlink/pkg/infra/cnvmp3"
	"github.com/m-mizutani/ytlink/pkg/infra/metrics"
	"github.com/urfave/cli/v3"
)

// Provider holds conversion provider configuration
type Provider struct {
	URL     string
	Timeout time.Duration
}

// Flags returns CLI flags for provider configuration
func (c *Provider) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider-url",
			Usage:       "Base URL of the conversion provider",
			Value:       cnvmp3.DefaultBaseURL,
			Destination: &c.URL,
			Sources:     cli.EnvVars("YTLINK_PROVIDER_URL"),
		},
		&cli.DurationFlag{
			Name:        "provider-timeout",
			Usage:       "Timeout of each request to the conversion provider",
			Value:       cnvmp3.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("YTLINK_PROVIDER_TIMEOUT"),
		},
	}
}

// NewClient creates a provider client from the configuration
func (c *Provider) NewClient(m *metrics.Metrics) *cnvmp3.Client {
	opts := []cnvmp3.Option{
		cnvmp3.WithMetrics(m),
	}
	if c.URL != "" {
		opts = append(opts, cnvmp3.WithBaseURL(c.URL))
	}
	if c.Timeout > 0 {
		opts = append(opts, cnvmp3.WithTimeout(c.Timeout))
	}
	return cnvmp3.New(opts...)
}
