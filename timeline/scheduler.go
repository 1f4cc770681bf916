package timeline

import (
	"sync"
	"time"
)

// Scheduler registers a recurring task. The returned cancel func is idempotent.
type Scheduler interface {
	Every(interval time.Duration, task func()) (cancel func())
}

// TickerScheduler fires on wall-clock time. Each fire is handed to Dispatch,
// which must run the task on the goroutine that owns the clock. Without a
// Dispatch there is no owner to hand fires to, so nothing is registered.
type TickerScheduler struct {
	Dispatch func(task func())
}

func (s *TickerScheduler) Every(interval time.Duration, task func()) func() {
	if s.Dispatch == nil {
		return func() {}
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				s.Dispatch(task)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// ManualScheduler runs on virtual time advanced explicitly by the caller.
// It is not safe for concurrent use.
type ManualScheduler struct {
	now    time.Duration
	nextID int
	timers []*manualTimer
}

type manualTimer struct {
	id        int
	interval  time.Duration
	next      time.Duration
	task      func()
	cancelled bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) Every(interval time.Duration, task func()) func() {
	if interval <= 0 {
		interval = time.Millisecond
	}

	m.nextID++
	t := &manualTimer{
		id:       m.nextID,
		interval: interval,
		next:     m.now + interval,
		task:     task,
	}
	m.timers = append(m.timers, t)

	return func() { t.cancelled = true }
}

// Advance moves virtual time forward by d, firing due tasks in time order.
// Registration order breaks ties. Tasks may cancel or register timers.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.due(target)
		if t == nil {
			break
		}
		m.now = t.next
		t.next += t.interval
		t.task()
	}
	m.now = target
	m.prune()
}

// Now is the virtual time elapsed since creation.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// Pending counts live registrations.
func (m *ManualScheduler) Pending() int {
	m.prune()
	return len(m.timers)
}

func (m *ManualScheduler) due(target time.Duration) *manualTimer {
	var earliest *manualTimer
	for _, t := range m.timers {
		if t.cancelled || t.next > target {
			continue
		}
		if earliest == nil || t.next < earliest.next || (t.next == earliest.next && t.id < earliest.id) {
			earliest = t
		}
	}
	return earliest
}

func (m *ManualScheduler) prune() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live
}
