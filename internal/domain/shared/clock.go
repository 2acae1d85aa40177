package shared

import "time"

// SecondsPerDay is the length of one accrual day.
const SecondsPerDay = 86400

// Day is SecondsPerDay as a duration.
const Day = SecondsPerDay * time.Second

// Clock is the single source of "now" for the game. Operations read it once and pass the
// instant explicitly into every engine call.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC, truncated to whole seconds so that
// persisted checkpoints round-trip exactly.
func (r *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock implements Clock with a controllable time for testing
type MockClock struct {
	CurrentTime time.Time
}

// NewMockClock creates a MockClock starting at the given time.
// A zero start time begins at 2024-01-01 00:00:00 UTC.
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return &MockClock{CurrentTime: startTime}
}

// Now returns the mock's current time
func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Advance moves the mock clock forward by the given duration. Negative durations are
// ignored: game time never runs backwards.
func (m *MockClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.CurrentTime = m.CurrentTime.Add(d)
}

// AdvanceDays moves the clock forward by a fractional number of days (1.5 = 36h).
func (m *MockClock) AdvanceDays(days float64) {
	m.Advance(time.Duration(days * float64(Day)))
}

// SetTime sets the mock clock to a specific time
func (m *MockClock) SetTime(t time.Time) {
	m.CurrentTime = t
}

// ElapsedSeconds returns the whole seconds between from and to, or 0 when to is not after from.
func ElapsedSeconds(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}
	return int64(to.Sub(from) / time.Second)
}

// FullDays returns the number of complete days between from and to.
func FullDays(from, to time.Time) int64 {
	return ElapsedSeconds(from, to) / SecondsPerDay
}
