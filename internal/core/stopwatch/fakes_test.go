package stopwatch

import "time"

type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, time.January, 2, 9, 30, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time           { return clock.current }
func (clock *fakeClock) Advance(d time.Duration) { clock.current = clock.current.Add(d) }

// manualScheduler fires its handlers only when Fire is called.
type manualScheduler struct {
	period        time.Duration
	programCalls  int
	running       bool
	subscriptions []subscription
	nextID        SubscriptionID
}

func (scheduler *manualScheduler) Program(period time.Duration) {
	scheduler.programCalls++
	scheduler.period = period
}

func (scheduler *manualScheduler) Period() time.Duration { return scheduler.period }
func (scheduler *manualScheduler) Start()                { scheduler.running = true }
func (scheduler *manualScheduler) Stop()                 { scheduler.running = false }

func (scheduler *manualScheduler) Subscribe(handler TickHandler) SubscriptionID {
	scheduler.nextID++
	scheduler.subscriptions = append(scheduler.subscriptions, subscription{id: scheduler.nextID, handler: handler})
	return scheduler.nextID
}

func (scheduler *manualScheduler) Unsubscribe(id SubscriptionID) {
	for index, sub := range scheduler.subscriptions {
		if sub.id == id {
			scheduler.subscriptions = append(scheduler.subscriptions[:index:index], scheduler.subscriptions[index+1:]...)
			return
		}
	}
}

// Fire delivers one tick to every handler if the scheduler is running.
func (scheduler *manualScheduler) Fire() {
	if !scheduler.running {
		return
	}
	for _, sub := range append([]subscription(nil), scheduler.subscriptions...) {
		sub.handler()
	}
}
