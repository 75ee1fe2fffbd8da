package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"server-availability/internal/models"
)

// Printer writes console lines for a batch. Lines from concurrent probes
// may arrive in any order but are never interleaved mid-line.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a Printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintResult writes the status line for one host
func (p *Printer) PrintResult(result models.ProbeResult) {
	p.writeLine(FormatResult(result))
}

// PrintElapsed writes the closing summary line
func (p *Printer) PrintElapsed(elapsed time.Duration) {
	p.writeLine(FormatElapsed(elapsed))
}

func (p *Printer) writeLine(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, line)
}

// FormatResult renders "<host> is Available" or "<host> is Unreachable"
func FormatResult(result models.ProbeResult) string {
	if result.Reachable {
		return fmt.Sprintf("%s is Available", result.Host)
	}
	return fmt.Sprintf("%s is Unreachable", result.Host)
}

// FormatElapsed renders the batch duration with two decimals
func FormatElapsed(elapsed time.Duration) string {
	return fmt.Sprintf("Executed in %.2f second(s)", elapsed.Seconds())
}
