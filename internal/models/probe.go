package models

import "time"

// ProbeResult represents the outcome of a single reachability check
type ProbeResult struct {
	Host         string  `json:"host"`
	Reachable    bool    `json:"reachable"`
	RTT          float64 `json:"rtt_ms"` // milliseconds, 0 when unknown
	ErrorMessage string  `json:"error_message,omitempty"`
}

// RunSummary holds every result of one batch and its wall-clock duration
type RunSummary struct {
	Results []ProbeResult `json:"results"`
	Elapsed time.Duration `json:"elapsed"`
}

// ElapsedSeconds returns the batch duration in seconds
func (s RunSummary) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}

// Reachable counts the hosts that answered
func (s RunSummary) Reachable() int {
	n := 0
	for _, r := range s.Results {
		if r.Reachable {
			n++
		}
	}
	return n
}

// Unreachable counts the hosts that did not answer
func (s RunSummary) Unreachable() int {
	return len(s.Results) - s.Reachable()
}
