// Package host provides the error reporting service used while lifting.
package host

import (
	"fmt"
	"sync"

	"github.com/retroenv/retrolift/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// Host receives non fatal translation problems. Lifting continues after a report.
type Host interface {
	// Error reports a translation error at an address.
	Error(addr machine.Address, format string, args ...any)
	// Warn reports a translation warning at an address.
	Warn(addr machine.Address, format string, args ...any)
}

// LogHost reports problems to a logger.
type LogHost struct {
	logger *log.Logger
}

var _ Host = (*LogHost)(nil)

// NewLogHost returns a host that logs every report.
func NewLogHost(logger *log.Logger) *LogHost {
	return &LogHost{logger: logger}
}

// Error logs a translation error.
func (h *LogHost) Error(addr machine.Address, format string, args ...any) {
	h.logger.Error(fmt.Sprintf(format, args...), log.Hex("address", uint64(addr)))
}

// Warn logs a translation warning.
func (h *LogHost) Warn(addr machine.Address, format string, args ...any) {
	h.logger.Warn(fmt.Sprintf(format, args...), log.Hex("address", uint64(addr)))
}

// Discard drops all reports.
type Discard struct{}

var _ Host = Discard{}

// Error does nothing.
func (Discard) Error(machine.Address, string, ...any) {}

// Warn does nothing.
func (Discard) Warn(machine.Address, string, ...any) {}

// Severity of a recorded report.
type Severity uint8

// Severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

// Report is a recorded problem.
type Report struct {
	Address  machine.Address
	Severity Severity
	Message  string
}

// Recorder keeps all reports in memory.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

var _ Host = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Error records a translation error.
func (r *Recorder) Error(addr machine.Address, format string, args ...any) {
	r.add(addr, SeverityError, fmt.Sprintf(format, args...))
}

// Warn records a translation warning.
func (r *Recorder) Warn(addr machine.Address, format string, args ...any) {
	r.add(addr, SeverityWarning, fmt.Sprintf(format, args...))
}

func (r *Recorder) add(addr machine.Address, severity Severity, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Address: addr, Severity: severity, Message: msg})
}

// Reports returns a copy of all recorded reports.
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.reports...)
}

// Errors returns the number of recorded errors.
func (r *Recorder) Errors() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rep := range r.reports {
		if rep.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Multi forwards every report to all hosts.
type Multi []Host

var _ Host = Multi(nil)

// Error forwards a translation error.
func (m Multi) Error(addr machine.Address, format string, args ...any) {
	for _, h := range m {
		h.Error(addr, format, args...)
	}
}

// Warn forwards a translation warning.
func (m Multi) Warn(addr machine.Address, format string, args ...any) {
	for _, h := range m {
		h.Warn(addr, format, args...)
	}
}
