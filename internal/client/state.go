package client

import (
	"fmt"
	"time"

	"github.com/muurk/navdemo/internal/model"
)

// Op names a client operation
type Op string

const (
	OpLogin     Op = "login"
	OpFetch     Op = "fetch"
	OpLogout    Op = "logout"
	OpRename    Op = "rename"
	OpAddDetail Op = "add-detail"
)

// Phase is the coarse session state derived from a State.
type Phase int

const (
	PhaseLoggedOut Phase = iota
	PhaseLoggingIn
	PhaseLoggedIn
)

// String returns a human-readable name for the phase
func (p Phase) String() string {
	switch p {
	case PhaseLoggedOut:
		return "logged out"
	case PhaseLoggingIn:
		return "logging in"
	case PhaseLoggedIn:
		return "logged in"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// State is an immutable snapshot of everything the client exposes.
// Records are deep copies; mutating them does not affect the client.
type State struct {
	LoggedIn   bool
	FetchCount int
	Records    []*model.Record

	// StartedAt is when the most recent operation was marked in flight.
	// It is zero while nothing is loading.
	StartedAt time.Time
}

// Loading reports whether any simulated operation is in flight.
func (s State) Loading() bool {
	return s.FetchCount > 0
}

// Phase derives the session phase. PhaseLoggingIn means loading while
// logged out, so a FetchDataSets issued before login also reports it.
func (s State) Phase() Phase {
	switch {
	case s.LoggedIn:
		return PhaseLoggedIn
	case s.Loading():
		return PhaseLoggingIn
	default:
		return PhaseLoggedOut
	}
}

// Record finds a record by id.
func (s State) Record(id model.ID) (*model.Record, bool) {
	for _, r := range s.Records {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// EventKind classifies a state change notification.
type EventKind int

const (
	EventFetchStarted EventKind = iota
	EventFetchFinished
	EventLoggedIn
	EventRecordsReplaced
	EventLoggedOut
	EventRecordChanged
)

// String returns a human-readable name for the event kind
func (k EventKind) String() string {
	switch k {
	case EventFetchStarted:
		return "fetch_started"
	case EventFetchFinished:
		return "fetch_finished"
	case EventLoggedIn:
		return "logged_in"
	case EventRecordsReplaced:
		return "records_replaced"
	case EventLoggedOut:
		return "logged_out"
	case EventRecordChanged:
		return "record_changed"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// Event is delivered to observers after every mutation.
type Event struct {
	Kind  EventKind
	Op    Op
	State State
}
