package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrHostsFile marks a hosts file that could not be loaded
var ErrHostsFile = errors.New("failed to read hosts file")

// ReadHostsFile loads hosts from an INI inventory. Every key value in every
// section is a host, in file order. The same host may appear under
// several keys and is then probed once per key.
//
//	[routers]
//	gw = 192.168.1.1
//
//	[servers]
//	web = 192.168.1.10
//	db  = 192.168.1.11
func ReadHostsFile(path string) ([]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrHostsFile, path, err)
	}

	var hosts []string
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			hosts = append(hosts, strings.TrimSpace(key.String()))
		}
	}

	return hosts, nil
}
