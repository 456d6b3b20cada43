// Package loader drives one asynchronous fetch lifecycle per view.
//
// A fetch runs inside a tea.Cmd and comes back to the Update loop as a
// Result. Restarting supersedes the in-flight fetch: its context is canceled
// and its Result, if it still arrives, is dropped by Deliver.
package loader

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNotAttached is returned by Start before the host view is attached.
var ErrNotAttached = errors.New("loader: view not attached")

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateDelivered
	StateReset
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateDelivered:
		return "delivered"
	case StateReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Fetch loads the items for args. It must honor ctx cancellation.
type Fetch[A, T any] func(ctx context.Context, args A) ([]T, error)

// Result is the message produced by a fetch.
type Result[T any] struct {
	LoaderID   int
	Generation uint64
	Items      []T
	Err        error
}

// Option configures a Session.
type Option func(*options)

type options struct {
	timeout time.Duration
}

// WithTimeout bounds every fetch. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Session is the loader bound to one controller. It is not safe for
// concurrent use; all methods run on the Update loop.
type Session[A, T any] struct {
	id       int
	fetch    Fetch[A, T]
	timeout  time.Duration
	attached bool

	state  State
	args   A
	gen    uint64
	cancel context.CancelFunc
}

// New creates an idle session with a fixed loader id.
func New[A, T any](id int, fetch Fetch[A, T], opts ...Option) *Session[A, T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Session[A, T]{id: id, fetch: fetch, timeout: o.timeout}
}

func (s *Session[A, T]) ID() int        { return s.id }
func (s *Session[A, T]) State() State   { return s.state }
func (s *Session[A, T]) Args() A        { return s.args }
func (s *Session[A, T]) Attached() bool { return s.attached }

// Attach marks the host view as attached.
func (s *Session[A, T]) Attach() { s.attached = true }

// Detach marks the host view as detached. It does not reset the session.
func (s *Session[A, T]) Detach() { s.attached = false }

// Start begins the first fetch. A session that is already loading or has
// delivered keeps its data and returns a nil command.
func (s *Session[A, T]) Start(args A) (tea.Cmd, error) {
	if !s.attached {
		return nil, ErrNotAttached
	}
	if s.state == StateLoading || s.state == StateDelivered {
		return nil, nil
	}
	return s.launch(args), nil
}

// Restart supersedes any in-flight fetch and loads args. Returns nil while
// detached.
func (s *Session[A, T]) Restart(args A) tea.Cmd {
	if !s.attached {
		return nil
	}
	return s.launch(args)
}

// Deliver accepts r when it answers the latest request. Stale results, results
// of another loader and results arriving after Reset are dropped. When r
// carries an error, ok is true and items is nil; callers inspect r.Err.
func (s *Session[A, T]) Deliver(r Result[T]) (items []T, ok bool) {
	if r.LoaderID != s.id || r.Generation != s.gen || s.state != StateLoading {
		return nil, false
	}
	s.state = StateDelivered
	s.cancel = nil
	if r.Err != nil {
		return nil, true
	}
	return r.Items, true
}

// Reset cancels the in-flight fetch and moves to StateReset.
func (s *Session[A, T]) Reset() {
	s.stop()
	s.gen++
	s.state = StateReset
}

func (s *Session[A, T]) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session[A, T]) launch(args A) tea.Cmd {
	s.stop()
	s.gen++
	s.args = args
	s.state = StateLoading

	var ctx context.Context
	var cancel context.CancelFunc
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	s.cancel = cancel

	id, gen, fetch := s.id, s.gen, s.fetch
	return func() tea.Msg {
		defer cancel()
		items, err := fetch(ctx, args)
		return Result[T]{LoaderID: id, Generation: gen, Items: items, Err: err}
	}
}
