package clock

import "time"

// Clock supplies the current time to services so tests can pin it.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock. Results are normalized to UTC.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f().UTC()
}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return Func(time.Now)
}

// NewFixed returns a clock that always reports t.
func NewFixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
