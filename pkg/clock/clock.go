package clock

import (
	"time"

	"github.com/door43-tools/tanotion/pkg/resync"
)

var (
	// Lazy-load
	clockOnce      resync.Once
	clockSingleton Clock
)

// Clock abstracts time so that rate-limit pauses and cache timestamps
// can be controlled from unit tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type DefaultClock struct{}

func (c DefaultClock) Now() time.Time {
	return time.Now()
}

func (c DefaultClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// TestClock is frozen and skips sleeps instantly by advancing its time.
type TestClock struct {
	now     time.Time
	slept   time.Duration
}

func NewTestClock() *TestClock {
	return NewTestClockAt(time.Now())
}

func NewTestClockAt(date time.Time) *TestClock {
	return &TestClock{
		now: date,
	}
}

func (c *TestClock) Now() time.Time {
	return c.now
}

func (c *TestClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.slept += d
}

// Slept returns the total duration the code under test asked to sleep.
func (c *TestClock) Slept() time.Duration {
	return c.slept
}

func (c *TestClock) FastForward(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func CurrentClock() Clock {
	if clockSingleton != nil {
		return clockSingleton
	}
	clockOnce.Do(func() {
		clockSingleton = DefaultClock{}
	})
	return clockSingleton
}

// Same as time.Now() but makes possible to control time from unit tests.
func Now() time.Time {
	return CurrentClock().Now()
}

// Same as time.Sleep() but instantaneous under a frozen clock.
func Sleep(d time.Duration) {
	CurrentClock().Sleep(d)
}

func FreezeAt(now time.Time) *TestClock {
	testClock := NewTestClockAt(now)
	clockSingleton = testClock
	return testClock
}

func Freeze() *TestClock {
	testClock := NewTestClock()
	clockSingleton = testClock
	return testClock
}

func Unfreeze() {
	clockSingleton = nil
	clockOnce.Reset()
}
