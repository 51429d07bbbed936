package runner

import "time"

// Stage describes a step of a case run.
type Stage string

const (
	// StageLoad reads the case file, its workspace and recording.
	StageLoad Stage = "load"
	// StageDiagnose checks entry-A diagnostics against the golden text.
	StageDiagnose Stage = "diagnose"
	// StageFix applies the selected action and compares expected documents.
	StageFix Stage = "fix"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the case is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the case is running the stage.
	StatusWorking Status = "working"
	// StatusDone indicates the case passed.
	StatusDone Status = "done"
	// StatusError indicates the case failed.
	StatusError Status = "error"
)

// Event reports progress for a case (or for the whole run when Case is empty).
type Event struct {
	Case    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
