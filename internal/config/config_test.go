package config

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr int
	}{
		{
			name:   "defaults",
			config: Config{Hosts: DefaultHosts, Mode: ModeExec},
		},
		{
			name:   "no hosts is allowed",
			config: Config{Mode: ModeExec},
		},
		{
			name:   "duplicates are allowed",
			config: Config{Hosts: []string{"127.0.0.1", "127.0.0.1"}, Mode: ModeICMP, Privileged: true},
		},
		{
			name:    "unknown mode",
			config:  Config{Hosts: []string{"127.0.0.1"}, Mode: "tcp"},
			wantErr: 1,
		},
		{
			name:    "privileged needs icmp",
			config:  Config{Mode: ModeExec, Privileged: true},
			wantErr: 1,
		},
		{
			name:    "every bad host is reported",
			config:  Config{Hosts: []string{"", "-f", "bad host", "ok.example"}, Mode: ModeExec},
			wantErr: 3,
		},
		{
			name:    "all problems at once",
			config:  Config{Hosts: []string{"-c"}, Mode: "", Privileged: true},
			wantErr: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			merr, ok := err.(*multierror.Error)
			require.True(t, ok, "expected *multierror.Error, got %T", err)
			assert.Len(t, merr.Errors, tt.wantErr)
		})
	}
}
