package dispatcher

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"server-availability/internal/models"
)

// probe runs a single check and prints its line. A panicking pinger only
// takes down its own host.
func (d *Dispatcher) probe(ctx context.Context, host string) (result models.ProbeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.ProbeResult{
				Host:         host,
				ErrorMessage: fmt.Sprintf("probe panicked: %v", r),
			}
			d.report(result)
		}
	}()

	result = d.pinger.Ping(ctx, host)
	result.Host = host
	d.report(result)
	return result
}

func (d *Dispatcher) report(result models.ProbeResult) {
	if !result.Reachable {
		d.log.WithFields(logrus.Fields{
			"host":  result.Host,
			"error": result.ErrorMessage,
		}).Debug("Host unreachable")
	}
	d.out.PrintResult(result)
}
