package models

import "context"

// Pinger performs a single reachability check against one host.
//
// Ping never fails: any problem reaching the host is reported as an
// unreachable result. Available reports whether the probe mechanism can
// be used at all on this system.
type Pinger interface {
	Available() error
	Ping(ctx context.Context, host string) ProbeResult
}
