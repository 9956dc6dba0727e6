// Package metrics records build observations. The CLI writes them to a
// Prometheus textfile after each build; NoopRecorder is used otherwise.
package metrics

import "time"

type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncPostsParsed(n int)
	IncPagesWritten(kind string)
	IncBuildOutcome(outcome Outcome)
	// Flush persists what was recorded so far, if the recorder persists.
	Flush() error
}

type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncPostsParsed(int)                         {}
func (NoopRecorder) IncPagesWritten(string)                     {}
func (NoopRecorder) IncBuildOutcome(Outcome)                    {}
func (NoopRecorder) Flush() error                               { return nil }
