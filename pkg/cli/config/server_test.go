package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/ytlink/pkg/cli/config"
)

func TestServer_Addr(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Server
		want string
	}{
		{"default port", config.Server{}, ":3000"},
		{"port only", config.Server{Port: "8080"}, ":8080"},
		{"host and port", config.Server{Host: "127.0.0.1", Port: "8080"}, "127.0.0.1:8080"},
		{"ipv6 host", config.Server{Host: "::1", Port: "3000"}, "[::1]:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.cfg.Addr(), tt.want)
		})
	}
}
