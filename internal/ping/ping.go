package ping

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"server-availability/internal/models"
)

// DefaultTimeout is how long a single echo request may wait for its reply
const DefaultTimeout = 1 * time.Second

// killGrace is added to the timeout before a ping process that never exits is killed
const killGrace = 2 * time.Second

// loopback must always answer when the probe mechanism works
const loopback = "127.0.0.1"

// ErrUnavailable means the probe mechanism cannot be used on this system at all
var ErrUnavailable = errors.New("probe mechanism unavailable")

var rttPatterns = []*regexp.Regexp{
	regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
	regexp.MustCompile(`(?:rtt|round-trip) min/avg/max(?:/[a-z]+)? = [0-9.]+/([0-9.]+)/`),
}

// Pinger checks reachability by running the platform ping utility
type Pinger struct {
	Binary  string
	Timeout time.Duration
}

// New creates a new Pinger using the ping binary found on PATH
func New() *Pinger {
	return &Pinger{
		Binary:  "ping",
		Timeout: DefaultTimeout,
	}
}

// Available reports ErrUnavailable when the ping binary cannot be found or
// cannot reach loopback, which happens when it lacks the privilege to open
// an ICMP socket.
func (p *Pinger) Available() error {
	path, err := exec.LookPath(p.Binary)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout+killGrace)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, pingArgs(runtime.GOOS, p.Timeout, loopback)...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return fmt.Errorf("%w: %s cannot reach %s: %w", ErrUnavailable, p.Binary, loopback, err)
		}
		return fmt.Errorf("%w: %s cannot reach %s: %w: %s", ErrUnavailable, p.Binary, loopback, err, msg)
	}
	return nil
}

// Ping sends one echo request to host. The exit status of the ping
// process is the only success signal.
func (p *Pinger) Ping(ctx context.Context, host string) models.ProbeResult {
	result := models.ProbeResult{
		Host: host,
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout+killGrace)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.Binary, pingArgs(runtime.GOOS, p.Timeout, host)...)
	output, err := cmd.CombinedOutput()

	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}

	result.Reachable = true
	result.RTT = parsePingOutput(string(output))
	return result
}

// pingArgs builds a count=1 argument list for the given platform
func pingArgs(goos string, timeout time.Duration, host string) []string {
	switch goos {
	case "windows":
		return []string{"-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), host}
	case "darwin", "freebsd":
		// -W is milliseconds on these, -t is an overall timeout in seconds
		return []string{"-c", "1", "-t", wholeSeconds(timeout), host}
	default:
		return []string{"-c", "1", "-W", wholeSeconds(timeout), host}
	}
}

func wholeSeconds(d time.Duration) string {
	s := int64(math.Ceil(d.Seconds()))
	if s < 1 {
		s = 1
	}
	return strconv.FormatInt(s, 10)
}

// parsePingOutput extracts the RTT in milliseconds from ping output, 0 if absent
func parsePingOutput(output string) float64 {
	// Linux/Mac: "time=XX.X ms"
	// Windows: "time=XXms" or "time<1ms"
	// Summary: "rtt min/avg/max/mdev = a/b/c/d ms"
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return rtt
			}
		}
	}

	return 0
}
