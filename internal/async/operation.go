// Package async provides the two request-orchestration adapters every
// screen builds on: Operation, which turns any backend call into a
// loading/notification state machine, and Fetcher, which guarantees that
// only the latest of a burst of fetches is honored.
package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

// defaultAutoHide is how long an auto-hiding inline notification stays
// visible.
const defaultAutoHide = 4 * time.Second

// commonMessage is shown for failures that carry no display message of
// their own.
const commonMessage = "Oops! Something went wrong. Try later."

// NotificationType selects how an operation surfaces its failures.
type NotificationType int

const (
	// NotificationToast shows a transient message.
	NotificationToast NotificationType = iota
	// NotificationInline keeps a dismissible message until acknowledged
	// (or until the auto-hide timer fires, when enabled).
	NotificationInline
)

// Notification is a user-facing failure message produced by an
// operation.
type Notification struct {
	Title   string
	Message string
}

// displayMessager is implemented by errors that carry a user-facing
// message (the normalized API error does).
type displayMessager interface {
	DisplayMessage() string
}

// Toaster receives transient notifications. The client shell prints
// them; tests record them.
type Toaster interface {
	Toast(n Notification)
}

// settings hold the per-operation configuration.
type settings struct {
	errorHandler     func(err error) bool
	notificationType NotificationType
	title            string
	autoHide         bool
	autoHideDelay    time.Duration
	toaster          Toaster
}

// Option configures an Operation.
type Option func(*settings)

// WithErrorHandler installs a per-call error hook. When it reports the
// error as handled, the default notification is suppressed. This is the
// only opt-out mechanism.
func WithErrorHandler(fn func(err error) bool) Option {
	return func(s *settings) { s.errorHandler = fn }
}

// WithNotification sets the notification style and title.
func WithNotification(t NotificationType, title string) Option {
	return func(s *settings) {
		s.notificationType = t
		s.title = title
	}
}

// WithAutoHide makes an inline notification disappear on its own after
// the default delay.
func WithAutoHide() Option {
	return func(s *settings) { s.autoHide = true }
}

// WithAutoHideDelay overrides the auto-hide delay.
func WithAutoHideDelay(d time.Duration) Option {
	return func(s *settings) {
		s.autoHide = true
		s.autoHideDelay = d
	}
}

// WithToaster routes toast notifications to t.
func WithToaster(t Toaster) Option {
	return func(s *settings) { s.toaster = t }
}

// Operation adapts one asynchronous action into an execute/loading/
// notification triple. Each Operation instance owns its own state;
// concurrent Execute calls are neither coalesced nor queued, so callers
// wanting at-most-one-in-flight must gate on Loading themselves.
type Operation[P, R any] struct {
	op       func(ctx context.Context, params P) (R, error)
	settings settings

	mu           sync.Mutex
	inflight     int
	notification *Notification
	hideTimer    *time.Timer
}

// NewOperation wraps op. The zero configuration shows toast
// notifications with no title.
func NewOperation[P, R any](op func(ctx context.Context, params P) (R, error), opts ...Option) *Operation[P, R] {
	o := &Operation[P, R]{op: op}
	o.settings.autoHideDelay = defaultAutoHide
	for _, opt := range opts {
		opt(&o.settings)
	}
	return o
}

// Execute runs the wrapped operation. Loading is true for exactly the
// duration of the call and false after every settle path. Cancellation
// is silent; any other failure resolves a display message and either
// defers to the error handler or surfaces the configured notification.
// The operation's result and error are returned unchanged either way.
func (o *Operation[P, R]) Execute(ctx context.Context, params P) (R, error) {
	o.setLoading(1)
	defer o.setLoading(-1)

	result, err := o.op(ctx, params)
	if err != nil {
		o.handleError(err)
	}
	return result, err
}

// Loading reports whether any Execute call is currently in flight.
func (o *Operation[P, R]) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inflight > 0
}

// Notification returns the current inline notification, or nil when
// there is none (toast-style failures never appear here).
func (o *Operation[P, R]) Notification() *Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.notification
}

// Dismiss clears the inline notification.
func (o *Operation[P, R]) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clearNotificationLocked()
}

// Close cancels the auto-hide timer. Call on view teardown.
func (o *Operation[P, R]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.hideTimer != nil {
		o.hideTimer.Stop()
		o.hideTimer = nil
	}
}

func (o *Operation[P, R]) setLoading(delta int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inflight += delta
}

func (o *Operation[P, R]) handleError(err error) {
	// Superseded requests are an expected outcome, not a failure.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}

	message := commonMessage
	var dm displayMessager
	if errors.As(err, &dm) {
		message = dm.DisplayMessage()
	}

	if o.settings.errorHandler != nil && o.settings.errorHandler(err) {
		return
	}

	n := Notification{Title: o.settings.title, Message: message}
	if o.settings.notificationType == NotificationToast {
		if o.settings.toaster != nil {
			o.settings.toaster.Toast(n)
		}
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.notification = &n
	if o.settings.autoHide {
		if o.hideTimer != nil {
			o.hideTimer.Stop()
		}
		o.hideTimer = time.AfterFunc(o.settings.autoHideDelay, func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.clearNotificationLocked()
		})
	}
}

func (o *Operation[P, R]) clearNotificationLocked() {
	o.notification = nil
	if o.hideTimer != nil {
		o.hideTimer.Stop()
		o.hideTimer = nil
	}
}
