package stopwatch

import (
	"fmt"
	"sync"
	"time"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/timefmt"
	"stopwatch/internal/logging"
)

// Options contains the collaborators of a StopWatch. Nil fields are replaced
// with the system clock, a TickerScheduler and a discarding logger.
type Options struct {
	Clock     Clock
	Scheduler Scheduler
	Logger    logging.Logger
}

// StopWatch is a state machine that accumulates elapsed time across
// start/pause cycles and renders it on every scheduler tick.
type StopWatch struct {
	mu         sync.Mutex
	clock      Clock
	scheduler  Scheduler
	logger     logging.Logger
	layout     timefmt.Layout
	interval   int
	state      State
	anchor     time.Time
	pausedAt   time.Time
	tickID     SubscriptionID
	subscribed bool
	text       string
	events     []chan Event
}

// New creates a stopped StopWatch. Invalid config values fall back to defaults.
func New(config model.StopWatchConfig, options Options) *StopWatch {
	config = config.WithDefaults()
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Scheduler == nil {
		options.Scheduler = NewTickerScheduler()
	}
	if options.Logger == nil {
		options.Logger = logging.Discard()
	}

	layout, err := timefmt.Parse(config.Format)
	if err != nil {
		options.Logger.Warningf("stopwatch: %v, using %q", err, model.DefaultFormat)
		layout = timefmt.MustParse(model.DefaultFormat)
	}

	watch := &StopWatch{
		clock:     options.Clock,
		scheduler: options.Scheduler,
		logger:    options.Logger,
		layout:    layout,
		interval:  config.IntervalMillis,
		state:     StateStopped,
	}
	watch.text = watch.layout.Elapsed(0)
	return watch
}

// Subscribe registers a new observer channel. Sends never block; an
// observer that falls behind misses events.
func (watch *StopWatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watch.mu.Lock()
	watch.events = append(watch.events, ch)
	watch.mu.Unlock()
	return ch
}

// Start begins a fresh run when stopped or resumes a paused one.
func (watch *StopWatch) Start() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.state == StateStarted {
		return watch.rejectLocked("start", ReasonAlreadyStarted)
	}

	now := watch.clock.Now()
	switch watch.state {
	case StateStopped:
		watch.subscribeLocked()
		watch.anchor = now
	case StatePaused:
		// Shift the anchor by the paused span so it is excluded from elapsed time.
		watch.anchor = watch.anchor.Add(now.Sub(watch.pausedAt))
		watch.pausedAt = time.Time{}
	}

	if watch.scheduler.Period() == 0 {
		watch.scheduler.Program(time.Duration(watch.interval) * time.Millisecond)
	}
	watch.scheduler.Start()

	watch.transitionLocked(StateStarted, now)
	return nil
}

// Pause halts ticking and freezes elapsed time. The tick subscription is kept.
func (watch *StopWatch) Pause() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.state != StateStarted {
		return watch.rejectLocked("pause", ReasonNotStarted)
	}

	watch.scheduler.Stop()
	now := watch.clock.Now()
	watch.pausedAt = now
	watch.transitionLocked(StatePaused, now)
	return nil
}

// Stop halts ticking, drops the tick subscription and resets the display
// to zero. Accumulated time is discarded.
func (watch *StopWatch) Stop() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.state == StateStopped {
		return watch.rejectLocked("stop", ReasonNotStartedOrPaused)
	}

	watch.scheduler.Stop()
	watch.unsubscribeLocked()
	now := watch.clock.Now()
	watch.anchor = time.Time{}
	watch.pausedAt = time.Time{}
	watch.text = watch.layout.Elapsed(0)
	watch.transitionLocked(StateStopped, now)
	watch.renderLocked(0, now)
	return nil
}

// Dispose halts the scheduler, drops the tick subscription and closes
// observer channels. It leaves the state unchanged and may be called any
// number of times, including from a tick handler.
func (watch *StopWatch) Dispose() {
	watch.mu.Lock()
	watch.scheduler.Stop()
	watch.unsubscribeLocked()
	events := watch.events
	watch.events = nil
	watch.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns the current mode.
func (watch *StopWatch) State() State {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.state
}

// Text returns the current display text.
func (watch *StopWatch) Text() string {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.text
}

// Elapsed returns the accumulated run time, excluding paused spans.
func (watch *StopWatch) Elapsed() time.Duration {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.elapsedLocked(watch.clock.Now())
}

// Format returns the display format specifier.
func (watch *StopWatch) Format() string {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.layout.String()
}

// SetFormat replaces the display format. When stopped the zero value is
// re-rendered at once; otherwise the format applies from the next tick.
func (watch *StopWatch) SetFormat(format string) error {
	layout, err := timefmt.Parse(format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	watch.mu.Lock()
	defer watch.mu.Unlock()
	watch.layout = layout
	if watch.state == StateStopped {
		watch.renderLocked(0, watch.clock.Now())
	}
	return nil
}

// Interval returns the configured tick period in milliseconds.
func (watch *StopWatch) Interval() int {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.interval
}

// SetInterval sets the tick period in milliseconds. The value only reaches
// the scheduler if it has not been programmed yet; a scheduler that already
// has a period keeps it.
func (watch *StopWatch) SetInterval(millis int) error {
	if millis <= 0 {
		return fmt.Errorf("%w: %d ms", ErrInvalidInterval, millis)
	}

	watch.mu.Lock()
	defer watch.mu.Unlock()
	watch.interval = millis
	if period := watch.scheduler.Period(); period != 0 && period != time.Duration(millis)*time.Millisecond {
		watch.logger.Debugf("stopwatch: interval %d ms deferred, scheduler keeps %s", millis, period)
	}
	return nil
}

func (watch *StopWatch) tick() {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateStarted {
		return
	}
	now := watch.clock.Now()
	watch.renderLocked(now.Sub(watch.anchor), now)
}

func (watch *StopWatch) elapsedLocked(now time.Time) time.Duration {
	var elapsed time.Duration
	switch watch.state {
	case StateStarted:
		elapsed = now.Sub(watch.anchor)
	case StatePaused:
		elapsed = watch.pausedAt.Sub(watch.anchor)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (watch *StopWatch) subscribeLocked() {
	if watch.subscribed {
		return
	}
	watch.tickID = watch.scheduler.Subscribe(watch.tick)
	watch.subscribed = true
}

func (watch *StopWatch) unsubscribeLocked() {
	if !watch.subscribed {
		return
	}
	watch.scheduler.Unsubscribe(watch.tickID)
	watch.subscribed = false
}

func (watch *StopWatch) rejectLocked(op, reason string) error {
	watch.logger.Debugf("stopwatch: rejected %s in state %s: %s", op, watch.state, reason)
	return &InvalidStateError{Op: op, State: watch.state, Reason: reason}
}

func (watch *StopWatch) transitionLocked(state State, now time.Time) {
	watch.logger.Debugf("stopwatch: %s -> %s", watch.state, state)
	watch.state = state
	watch.emitLocked(Event{
		Type:    EventStateChange,
		State:   state,
		Elapsed: watch.elapsedLocked(now),
		Text:    watch.text,
		At:      now,
	})
}

func (watch *StopWatch) renderLocked(elapsed time.Duration, now time.Time) {
	if elapsed < 0 {
		elapsed = 0
	}
	watch.text = watch.layout.Elapsed(elapsed)
	watch.emitLocked(Event{
		Type:    EventDisplay,
		State:   watch.state,
		Elapsed: elapsed,
		Text:    watch.text,
		At:      now,
	})
}

func (watch *StopWatch) emitLocked(event Event) {
	for _, ch := range watch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
