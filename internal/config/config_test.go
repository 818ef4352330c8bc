package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		apiAddress string
		adminToken string
		pageLimit  int
		timeout    int
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				apiAddress: "localhost:8080",
				pageLimit:  20,
				timeout:    5,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"ADMIN_API_ADDRESS": "api.example.com:9999",
				"ADMIN_API_TOKEN":   "secret-env",
				"ADMIN_PAGE_LIMIT":  "50",
			},
			flags: []string{},
			want: want{
				apiAddress: "api.example.com:9999",
				adminToken: "secret-env",
				pageLimit:  50,
				timeout:    5,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-t", "secret-flag",
				"-l", "10",
				"-timeout", "30",
			},
			want: want{
				apiAddress: "localhost:7777",
				adminToken: "secret-flag",
				pageLimit:  10,
				timeout:    30,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"ADMIN_API_ADDRESS": "env:9000",
				"ADMIN_API_TOKEN":   "secret-env",
			},
			flags: []string{
				"-a", "flag:8000",
				"-t", "secret-flag",
			},
			want: want{
				apiAddress: "env:9000",
				adminToken: "secret-env",
				pageLimit:  20,
				timeout:    5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.apiAddress, cfg.APIAddress)
			assert.Equal(t, tt.want.adminToken, cfg.AdminToken)
			assert.Equal(t, tt.want.pageLimit, cfg.PageLimit)
			assert.Equal(t, tt.want.timeout, cfg.RequestTimeout)
		})
	}
}
