package tictoc

import (
	"math"
	"time"
)

// span is a signed interval split into whole seconds and a nanosecond
// remainder. Both parts carry the same sign and |nsec| < 1s, so spans far
// beyond time.Duration's ~292 year range are still exact.
type span struct {
	sec  int64
	nsec int64
}

const (
	minDuration time.Duration = math.MinInt64
	maxDuration time.Duration = math.MaxInt64
)

// between returns end - start. Time.Sub uses the monotonic readings when both
// values carry one and saturates when the result does not fit a Duration; a
// saturated result is recomputed from the wall-clock readings.
func between(start, end time.Time) span {
	if d := end.Sub(start); d > minDuration && d < maxDuration {
		return spanOf(d)
	}

	sec := end.Unix() - start.Unix()
	nsec := int64(end.Nanosecond() - start.Nanosecond())
	switch {
	case sec > 0 && nsec < 0:
		sec--
		nsec += int64(time.Second)
	case sec < 0 && nsec > 0:
		sec++
		nsec -= int64(time.Second)
	}
	return span{sec: sec, nsec: nsec}
}

func spanOf(d time.Duration) span {
	return span{sec: int64(d / time.Second), nsec: int64(d % time.Second)}
}

// duration converts s to a Duration, saturating at the Duration limits.
func (s span) duration() time.Duration {
	n, ok := s.in(Nanoseconds)
	if ok {
		return time.Duration(n)
	}
	if s.sec < 0 {
		return minDuration
	}
	return maxDuration
}

// in converts s to a whole number of units, truncating toward zero. It
// reports false when the result does not fit an int64.
func (s span) in(u Unit) (int64, bool) {
	d := unitDefs[u]
	if d.secs > 0 {
		// nsec never moves the quotient: it has the sign of sec and is
		// shorter than a second.
		return s.sec / d.secs, true
	}

	perSec := int64(time.Second) / d.nanos
	hi, ok := mul64(s.sec, perSec)
	if !ok {
		return 0, false
	}
	lo := s.nsec / d.nanos
	sum := hi + lo
	if (lo > 0 && sum < hi) || (lo < 0 && sum > hi) {
		return 0, false
	}
	return sum, true
}

// mul64 multiplies a by a positive b, reporting overflow.
func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 1 {
		return a * b, true
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
