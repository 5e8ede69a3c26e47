// Package view holds what the admin screens share: user notices, the
// generation counter that discards stale async results, and the audit
// history of state updates.
package view

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	// ErrStale is returned when a response arrives after the view was
	// remounted or unmounted. The result is dropped.
	ErrStale = errors.New("view: stale response discarded")
	// ErrBusy is returned while a submission of the same kind is in flight.
	ErrBusy = errors.New("view: action already in progress")
	// ErrClosed is returned by modal actions when the modal is not open.
	ErrClosed = errors.New("view: modal is not open")
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a dismissible message shown to the user.
type Notice struct {
	Level   Level
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

func Success(n Notifier, msg string) { n.Notify(Notice{Level: LevelSuccess, Message: msg}) }
func Error(n Notifier, msg string)   { n.Notify(Notice{Level: LevelError, Message: msg}) }

// LogNotifier writes notices to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notice) {
	if n.Level == LevelError {
		l.Logger.Warn(n.Message, slog.String("notice", string(n.Level)))
		return
	}
	l.Logger.Info(n.Message, slog.String("notice", string(n.Level)))
}

// Notifiers delivers each notice to every notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(n Notice) {
	for _, x := range ns {
		x.Notify(n)
	}
}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice, or the zero Notice.
func (r *Recorder) Last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

// Generation identifies the current mount of a view. Async actions capture a
// token before calling out and check it before applying the result.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) Token() uint64 { return g.n.Load() }

func (g *Generation) Advance() uint64 { return g.n.Add(1) }

func (g *Generation) Valid(token uint64) bool { return g.n.Load() == token }

// History is the ordered list of state updates applied to a view.
type History struct {
	mu      sync.Mutex
	actions []string
}

func (h *History) Record(action string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actions = append(h.actions, action)
}

func (h *History) Actions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.actions...)
}
