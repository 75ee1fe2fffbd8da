package config

import (
	"flag"
	"os"
	"strings"
)

// DefaultHosts is probed when no host source is given
var DefaultHosts = []string{
	"192.168.1.1",
	"192.168.1.2",
	"192.168.1.3",
	"192.168.1.4",
	"192.168.1.5",
	"192.168.1.6",
}

// ParseFlags parses command-line flags and returns a Config
func ParseFlags() (Config, error) {
	return Parse(os.Args[0], os.Args[1:])
}

// Parse builds a Config from args. Hosts are taken from -hosts (when set
// explicitly), then -hosts-file, then positional arguments, in that order.
func Parse(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var (
		hosts      = fs.String("hosts", strings.Join(DefaultHosts, ","), "Comma-separated hosts to probe")
		hostsFile  = fs.String("hosts-file", "", "INI inventory of hosts to probe")
		mode       = fs.String("mode", ModeExec, "Probe mode: exec (system ping) or icmp (raw echo)")
		privileged = fs.Bool("privileged", false, "Use raw ICMP sockets in icmp mode")
		chartPath  = fs.String("chart", "", "Write a PNG latency chart to this path")
		debug      = fs.Bool("debug", false, "Enable debug log level")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	var list []string
	if explicit["hosts"] {
		list = append(list, splitHosts(*hosts)...)
	}
	if *hostsFile != "" {
		fileHosts, err := ReadHostsFile(*hostsFile)
		if err != nil {
			return Config{}, err
		}
		list = append(list, fileHosts...)
	}
	list = append(list, fs.Args()...)

	if !explicit["hosts"] && *hostsFile == "" && fs.NArg() == 0 {
		list = append(list, DefaultHosts...)
	}

	return Config{
		Hosts:      list,
		Mode:       *mode,
		Privileged: *privileged,
		ChartPath:  *chartPath,
		Debug:      *debug,
	}, nil
}

// splitHosts splits a comma-separated list; an empty string yields no hosts
func splitHosts(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
