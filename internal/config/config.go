package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Probe modes
const (
	ModeExec = "exec"
	ModeICMP = "icmp"
)

// Config holds all configuration for one availability run
type Config struct {
	Hosts      []string
	Mode       string
	Privileged bool
	ChartPath  string
	Debug      bool
}

// Validate checks if the configuration is valid, reporting every problem at once
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.Mode {
	case ModeExec, ModeICMP:
	default:
		result = multierror.Append(result, fmt.Errorf("mode must be %q or %q, got %q", ModeExec, ModeICMP, c.Mode))
	}

	if c.Privileged && c.Mode != ModeICMP {
		result = multierror.Append(result, fmt.Errorf("privileged requires mode %q", ModeICMP))
	}

	for i, host := range c.Hosts {
		switch {
		case strings.TrimSpace(host) == "":
			result = multierror.Append(result, fmt.Errorf("host #%d is empty", i+1))
		case strings.HasPrefix(host, "-"):
			result = multierror.Append(result, fmt.Errorf("host %q must not start with '-'", host))
		case strings.ContainsAny(host, " \t\r\n"):
			result = multierror.Append(result, fmt.Errorf("host %q contains whitespace", host))
		}
	}

	return result.ErrorOrNil()
}
