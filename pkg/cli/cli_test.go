package cli_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/ytlink/pkg/cli"
)

func TestRun_InvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(), []string{"ytlink", "--log-level", "verbose", "serve"})
	gt.Error(t, err)
}

func TestRun_InvalidSentryDSN(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"ytlink",
		"--sentry-dsn", "not a dsn",
		"serve",
		"--port", "0",
	})
	gt.Error(t, err)
}
