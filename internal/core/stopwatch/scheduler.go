package stopwatch

import (
	"sync"
	"time"
)

// TickHandler is called on every scheduler tick.
type TickHandler func()

// SubscriptionID identifies a handler registered with a Scheduler.
type SubscriptionID uint64

// Scheduler fires registered handlers periodically. The period stays fixed
// once programmed unless Program is called again.
type Scheduler interface {
	Program(period time.Duration)
	Period() time.Duration
	Start()
	Stop()
	Subscribe(handler TickHandler) SubscriptionID
	Unsubscribe(id SubscriptionID)
}

type subscription struct {
	id      SubscriptionID
	handler TickHandler
}

// TickerScheduler is a Scheduler backed by time.Ticker. Handlers run on the
// ticker goroutine and are called without any scheduler lock held, so they
// may call Stop or Unsubscribe.
type TickerScheduler struct {
	mu            sync.Mutex
	period        time.Duration
	subscriptions []subscription
	nextID        SubscriptionID
	stopCh        chan struct{}
	running       bool
}

// NewTickerScheduler creates an unprogrammed scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// Program sets the tick period used by the next Start.
func (scheduler *TickerScheduler) Program(period time.Duration) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.period = period
}

// Period returns the programmed period, or zero if never programmed.
func (scheduler *TickerScheduler) Period() time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.period
}

// Start launches the ticking loop. It does nothing when already running or
// when no positive period has been programmed.
func (scheduler *TickerScheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.running || scheduler.period <= 0 {
		return
	}
	scheduler.running = true
	scheduler.stopCh = make(chan struct{})
	go scheduler.run(scheduler.period, scheduler.stopCh)
}

// Stop halts the ticking loop without waiting for it to exit.
func (scheduler *TickerScheduler) Stop() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if !scheduler.running {
		return
	}
	close(scheduler.stopCh)
	scheduler.running = false
}

// Running reports whether the ticking loop is active.
func (scheduler *TickerScheduler) Running() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.running
}

// Subscribe registers handler and returns its id.
func (scheduler *TickerScheduler) Subscribe(handler TickHandler) SubscriptionID {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.nextID++
	scheduler.subscriptions = append(scheduler.subscriptions, subscription{id: scheduler.nextID, handler: handler})
	return scheduler.nextID
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (scheduler *TickerScheduler) Unsubscribe(id SubscriptionID) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	for index, sub := range scheduler.subscriptions {
		if sub.id == id {
			scheduler.subscriptions = append(scheduler.subscriptions[:index:index], scheduler.subscriptions[index+1:]...)
			return
		}
	}
}

func (scheduler *TickerScheduler) run(period time.Duration, stopCh chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			scheduler.fire(stopCh)
		}
	}
}

func (scheduler *TickerScheduler) fire(stopCh chan struct{}) {
	scheduler.mu.Lock()
	// A tick that raced with Stop belongs to a finished run.
	if !scheduler.running || scheduler.stopCh != stopCh {
		scheduler.mu.Unlock()
		return
	}
	subscriptions := append([]subscription(nil), scheduler.subscriptions...)
	scheduler.mu.Unlock()

	for _, sub := range subscriptions {
		sub.handler()
	}
}
