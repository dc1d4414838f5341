// Package app owns the console's cross-cutting state: the current view, the
// in-flight request flag, API reachability, the single notification slot,
// the last result and the prediction history. The Coordinator is the only
// thing that mutates that state.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/history"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/scoring"
	"github.com/Veraticus/credit-risk-console/internal/service"
)

// NotificationTTL is how long a notification stays up unless dismissed.
const NotificationTTL = 5 * time.Second

// User-facing messages.
const (
	MsgPredictionSucceeded = "Prediction completed successfully"
	MsgPredictionFailed    = "Prediction failed"
	MsgTransportFailure    = "Could not reach the scoring service"
	MsgAPIUnreachable      = "Unable to connect to the prediction API"
	MsgSaveFailed          = "Could not save prediction history"
	MsgHistoryCleared      = "Prediction history cleared"
)

// ErrBusy is returned by SubmitProfile while another submission is in flight.
// No request is issued.
var ErrBusy = errors.New("a prediction is already in progress")

// Scorer is the part of the scoring client the coordinator needs.
type Scorer interface {
	Predict(ctx context.Context, profile model.ClientProfile) scoring.Outcome
	CheckHealth(ctx context.Context) (model.HealthStatus, error)
	ModelInfo(ctx context.Context) (model.ModelDetails, error)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithScheduler replaces the timer used for notification auto-clear.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) {
		c.scheduler = s
	}
}

// WithClock replaces the clock used to stamp notifications.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithNotificationTTL overrides NotificationTTL.
func WithNotificationTTL(d time.Duration) Option {
	return func(c *Coordinator) {
		c.ttl = d
	}
}

// Coordinator mediates every state transition of the console. It is safe
// for concurrent use; listeners are called outside its lock.
type Coordinator struct {
	scorer    Scorer
	store     service.HistoryStore
	scheduler Scheduler
	now       func() time.Time

	notification *Notification
	lastResult   *model.PredictionRecord
	modelDetails *model.ModelDetails
	timer        Stopper
	listeners    []func(Snapshot)
	log          history.Log

	ttl          time.Duration
	generation   uint64
	view         View
	reachability Reachability

	mu     sync.Mutex
	busy   bool
	closed bool
}

// New creates a coordinator. Call Initialize before use and Close when done.
func New(scorer Scorer, store service.HistoryStore, opts ...Option) *Coordinator {
	c := &Coordinator{
		scorer:    scorer,
		store:     store,
		scheduler: timeScheduler{},
		now:       time.Now,
		ttl:       NotificationTTL,
		view:      ViewForm,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to be called with a fresh snapshot after every state
// change, including notification expiry.
func (c *Coordinator) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Initialize loads the stored history and then checks whether the scoring
// service answers. Unreadable history counts as empty. The TUI runs this
// off its event loop.
func (c *Coordinator) Initialize(ctx context.Context) {
	records := c.store.LoadHistory(ctx)

	c.mu.Lock()
	c.log = history.New(records)
	c.reachability = ReachabilityUnknown
	c.unlockAndEmit()

	slog.Debug("history loaded", "records", len(records))

	c.CheckReachability(ctx)
}

// CheckReachability refreshes the reachability flag. A failed check raises
// an informational notification. Any answer from the health endpoint counts
// as Reachable, even one reporting that neither the model nor the pipeline
// is loaded; that case is only logged.
func (c *Coordinator) CheckReachability(ctx context.Context) Reachability {
	health, err := c.scorer.CheckHealth(ctx)

	c.mu.Lock()
	if err != nil {
		slog.Warn("scoring service health check failed", "error", err)
		c.reachability = Unreachable
		c.raiseLocked(NotifyInfo, MsgAPIUnreachable)
	} else {
		if !health.Ready() {
			slog.Warn("scoring service reports model not loaded", "status", health.Status)
		}
		c.reachability = Reachable
	}
	r := c.reachability
	c.unlockAndEmit()
	return r
}

// SubmitProfile scores profile. While a submission is in flight it returns
// ErrBusy without contacting the service. Otherwise the returned error is
// always nil: failures become notifications and are reported through the
// outcome.
func (c *Coordinator) SubmitProfile(ctx context.Context, profile model.ClientProfile) (scoring.Outcome, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.busy = true
	c.unlockAndEmit()

	outcome := c.scorer.Predict(ctx, profile)

	c.mu.Lock()
	var persist []model.PredictionRecord
	switch o := outcome.(type) {
	case scoring.Success:
		rec := o.Record
		c.lastResult = &rec
		c.log = c.log.Push(rec)
		c.raiseLocked(NotifySuccess, MsgPredictionSucceeded)
		persist = c.log.Records()
	case scoring.Rejected:
		msg := o.Message
		if msg == "" {
			msg = MsgPredictionFailed
		}
		c.raiseLocked(NotifyError, msg)
	default:
		if f, ok := o.(scoring.TransportFailure); ok {
			slog.Debug("prediction transport failure", "error", f.Cause)
		}
		c.raiseLocked(NotifyError, MsgTransportFailure)
	}
	c.unlockAndEmit()

	if persist != nil {
		c.save(ctx, persist)
	}

	c.mu.Lock()
	c.busy = false
	c.unlockAndEmit()

	return outcome, nil
}

// SwitchView changes the visible view. The last result is kept.
func (c *Coordinator) SwitchView(v View) {
	if v != ViewForm && v != ViewDashboard {
		return
	}

	c.mu.Lock()
	if c.view == v {
		c.mu.Unlock()
		return
	}
	c.view = v
	c.unlockAndEmit()
}

// ResetResult clears the last result. History is untouched.
func (c *Coordinator) ResetResult() {
	c.mu.Lock()
	c.lastResult = nil
	c.unlockAndEmit()
}

// Dismiss clears the current notification and cancels its auto-clear.
func (c *Coordinator) Dismiss() {
	c.mu.Lock()
	if c.notification == nil {
		c.mu.Unlock()
		return
	}
	c.clearNotificationLocked()
	c.unlockAndEmit()
}

// Notify raises a notification, replacing any current one.
func (c *Coordinator) Notify(kind NotificationKind, message string) {
	c.mu.Lock()
	c.raiseLocked(kind, message)
	c.unlockAndEmit()
}

// RefreshDashboard loads model details for the dashboard header. Failures
// are logged and keep the previous details.
func (c *Coordinator) RefreshDashboard(ctx context.Context) {
	details, err := c.scorer.ModelInfo(ctx)
	if err != nil {
		slog.Warn("failed to load model details", "error", err)
		return
	}

	c.mu.Lock()
	c.modelDetails = &details
	c.unlockAndEmit()
}

// ClearHistory empties the history and persists the empty log.
func (c *Coordinator) ClearHistory(ctx context.Context) error {
	c.mu.Lock()
	c.log = history.Log{}
	c.unlockAndEmit()

	if err := c.store.SaveHistory(ctx, []model.PredictionRecord{}); err != nil {
		c.Notify(NotifyError, MsgSaveFailed)
		return err
	}
	c.Notify(NotifyInfo, MsgHistoryCleared)
	return nil
}

// Close cancels the pending notification timer and drops listeners. The
// store is owned by the caller.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.listeners = nil
	c.closed = true
}

func (c *Coordinator) save(ctx context.Context, records []model.PredictionRecord) {
	if err := c.store.SaveHistory(ctx, records); err != nil {
		slog.Error("failed to persist history", "error", err, "records", len(records))
		c.Notify(NotifyError, MsgSaveFailed)
	}
}

// raiseLocked replaces the notification and reschedules the auto-clear.
// The generation check makes a timer that fires after being replaced a no-op.
func (c *Coordinator) raiseLocked(kind NotificationKind, message string) {
	c.clearNotificationLocked()
	c.notification = &Notification{Kind: kind, Message: message, RaisedAt: c.now()}

	if c.closed || c.ttl <= 0 {
		return
	}
	gen := c.generation
	c.timer = c.scheduler.AfterFunc(c.ttl, func() { c.expire(gen) })
}

func (c *Coordinator) clearNotificationLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.notification = nil
}

func (c *Coordinator) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.notification == nil {
		c.mu.Unlock()
		return
	}
	c.notification = nil
	c.timer = nil
	c.unlockAndEmit()
}

// unlockAndEmit releases the lock and hands a snapshot to the listeners.
// Must be called with c.mu held.
func (c *Coordinator) unlockAndEmit() {
	snap := c.snapshotLocked()
	listeners := make([]func(Snapshot), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (c *Coordinator) snapshotLocked() Snapshot {
	s := Snapshot{
		View:         c.view,
		Busy:         c.busy,
		Reachability: c.reachability,
		History:      c.log.Records(),
	}
	if c.notification != nil {
		n := *c.notification
		s.Notification = &n
	}
	if c.lastResult != nil {
		r := *c.lastResult
		s.LastResult = &r
	}
	if c.modelDetails != nil {
		d := *c.modelDetails
		s.ModelDetails = &d
	}
	return s
}
