//go:build localtime

package tictoc

import "time"

// LocalTime reports whether the local wall-clock measurement is compiled in.
const LocalTime = true

type localMark struct {
	// Local is the wall-clock reading in the local time zone.
	Local time.Time
}

type localTimer struct {
	LocalStart   time.Time
	LocalEnd     time.Time
	LocalElapsed time.Duration
}

// localRecord holds wall-clock readings without a monotonic component, so the
// local measurement follows adjustments of the system clock.
type localRecord struct {
	start    time.Time
	end      time.Time
	elapsed  span
	finished bool
}

func newLocalRecord(now time.Time) localRecord {
	// Local strips the monotonic reading.
	return localRecord{start: now.Local()}
}

func (l localRecord) finish(now time.Time) localRecord {
	l.end = now.Local()
	l.elapsed = between(l.start, l.end)
	l.finished = true
	return l
}

func (l localRecord) startMark() localMark {
	return localMark{Local: l.start}
}

func (l localRecord) endMark() localMark {
	return localMark{Local: l.end}
}

func (l localRecord) snapshot() localTimer {
	t := localTimer{LocalStart: l.start}
	if l.finished {
		t.LocalEnd = l.end
		t.LocalElapsed = l.elapsed.duration()
	}
	return t
}

func localMeasure(r record) (span, bool) {
	return r.local.elapsed, r.local.finished
}

// ElapsedLocal is Elapsed over the local wall-clock readings.
func (r *Registry) ElapsedLocal(key string, unit Unit) (int64, error) {
	return r.elapsed("tictoc.ElapsedLocal", key, unit, localMeasure)
}
