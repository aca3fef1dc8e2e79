// Package progress streams per-unit build progress to whoever drives
// a multi-file build.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Stage describes a high-level build phase.
type Stage string

const (
	// StageReuse is the preamble/module reuse lookup.
	StageReuse Stage = "reuse"
	// StagePreamble is preamble generation.
	StagePreamble Stage = "preamble"
	// StageBuild is the tree build.
	StageBuild Stage = "build"
	// StageSerialize is artifact serialization.
	StageSerialize Stage = "serialize"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a unit (or the whole run when File is
// empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events.
type Sink interface {
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

// WriterSink prints one line per terminal event. Safe for concurrent
// use.
type WriterSink struct {
	W io.Writer

	mu sync.Mutex
}

func (s *WriterSink) OnEvent(evt Event) {
	if s.W == nil || evt.Status == StatusQueued || evt.Status == StatusWorking {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch evt.Status {
	case StatusError:
		fmt.Fprintf(s.W, "%-10s %s: %v\n", evt.Stage, evt.File, evt.Err)
	default:
		fmt.Fprintf(s.W, "%-10s %s (%.2f ms)\n", evt.Stage, evt.File, float64(evt.Elapsed)/float64(time.Millisecond))
	}
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
