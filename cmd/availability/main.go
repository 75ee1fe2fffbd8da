package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"server-availability/internal/config"
	"server-availability/internal/dispatcher"
	"server-availability/internal/models"
	"server-availability/internal/ping"
	"server-availability/internal/report"
)

const (
	exitOK          = 0
	exitUnavailable = 1
	exitUsage       = 2
)

var logger = logrus.New()

func main() {
	logger.SetOutput(os.Stderr)
	os.Exit(run(os.Args[0], os.Args[1:]))
}

func run(name string, args []string) int {
	// Parse configuration
	cfg, err := config.Parse(name, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		// flag has already printed its own parse errors
		if errors.Is(err, config.ErrHostsFile) {
			logger.Errorf("Invalid configuration: %v", err)
		}
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		return exitUsage
	}

	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	d := dispatcher.New(newPinger(cfg), report.NewPrinter(os.Stdout), logger)

	summary, err := d.RunProbeBatch(context.Background(), cfg.Hosts)
	if err != nil {
		logger.WithField("mode", cfg.Mode).Errorf("Probe mechanism unavailable: %v", err)
		return exitUnavailable
	}

	if cfg.ChartPath != "" {
		writeChart(cfg.ChartPath, summary)
	}

	return exitOK
}

func newPinger(cfg config.Config) models.Pinger {
	if cfg.Mode == config.ModeICMP {
		return ping.NewICMP(cfg.Privileged)
	}
	return ping.New()
}

func writeChart(path string, summary models.RunSummary) {
	if err := report.SaveLatencyChart(path, summary); err != nil {
		if errors.Is(err, report.ErrNoLatencyData) {
			logger.Warnf("Skipping latency chart: %v", err)
			return
		}
		logger.Errorf("Failed to write latency chart: %v", err)
		return
	}
	logger.Infof("Latency chart written to %s", path)
}
