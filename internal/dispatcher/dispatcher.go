package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"server-availability/internal/models"
	"server-availability/internal/report"
)

// Dispatcher runs one reachability check per host and joins on all of them
type Dispatcher struct {
	pinger models.Pinger
	out    *report.Printer
	log    logrus.FieldLogger
}

// New creates a new Dispatcher
func New(pinger models.Pinger, out *report.Printer, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		pinger: pinger,
		out:    out,
		log:    logger,
	}
}

// RunProbeBatch probes every host concurrently and blocks until all probes
// have finished. Each host's line is printed as its probe completes and the
// elapsed line is printed once after the join. The only error returned is a
// probe mechanism that is unavailable, in which case nothing is probed.
func (d *Dispatcher) RunProbeBatch(ctx context.Context, hosts []string) (models.RunSummary, error) {
	if err := d.pinger.Available(); err != nil {
		return models.RunSummary{}, fmt.Errorf("cannot probe %d hosts: %w", len(hosts), err)
	}

	d.log.WithField("hosts", len(hosts)).Debug("Dispatching probes")

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]models.ProbeResult, 0, len(hosts))
	)

	start := time.Now()
	for _, host := range hosts {
		wg.Add(1)
		go func(host string) {
			defer wg.Done()

			result := d.probe(ctx, host)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(host)
	}
	wg.Wait()

	summary := models.RunSummary{
		Results: results,
		Elapsed: time.Since(start),
	}
	d.out.PrintElapsed(summary.Elapsed)

	d.log.WithFields(logrus.Fields{
		"available":   summary.Reachable(),
		"unreachable": summary.Unreachable(),
		"elapsed":     summary.Elapsed,
	}).Debug("Batch complete")

	return summary, nil
}
