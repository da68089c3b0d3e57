package config

import (
	"net"
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Usage:       "Server listen host (empty for all interfaces)",
			Value:       "",
			Destination: &c.Host,
			Sources:     cli.EnvVars("YTLINK_HOST"),
		},
		&cli.StringFlag{
			Name:        "port",
			Aliases:     []string{"p"},
			Usage:       "Server listen port",
			Value:       "3000",
			Destination: &c.Port,
			Sources:     cli.EnvVars("PORT"),
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "Time to wait for in-flight work on shutdown",
			Value:       10 * time.Second,
			Destination: &c.ShutdownTimeout,
			Sources:     cli.EnvVars("YTLINK_SHUTDOWN_TIMEOUT"),
		},
	}
}

// Addr returns the listen address
func (c *Server) Addr() string {
	port := c.Port
	if port == "" {
		port = "3000"
	}
	return net.JoinHostPort(c.Host, port)
}
