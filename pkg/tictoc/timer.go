package tictoc

import "time"

// Mark is the instant captured by Start or Stop.
type Mark struct {
	// Time is the absolute instant, in UTC.
	Time time.Time
	localMark
}

// Timer is a value snapshot of one key's measurement cycle. End and Elapsed
// are zero until the timer is finished.
type Timer struct {
	Key      string
	Start    time.Time
	End      time.Time
	Elapsed  time.Duration
	Finished bool
	localTimer
}

// Running reports whether the timer has been started but not stopped.
func (t Timer) Running() bool {
	return !t.Finished
}

// record is the registry's own copy of a timer. Records are only ever
// replaced whole; end and elapsed are meaningful iff finished is set.
type record struct {
	start    time.Time
	end      time.Time
	elapsed  span
	finished bool
	local    localRecord
}

func newRecord(now time.Time) record {
	return record{
		start: now,
		local: newLocalRecord(now),
	}
}

// finish returns a finished copy of r ending at now.
func (r record) finish(now time.Time) record {
	r.end = now
	r.elapsed = between(r.start, now)
	r.finished = true
	r.local = r.local.finish(now)
	return r
}

func (r record) startMark() Mark {
	return Mark{Time: r.start.UTC(), localMark: r.local.startMark()}
}

func (r record) endMark() Mark {
	return Mark{Time: r.end.UTC(), localMark: r.local.endMark()}
}

func (r record) snapshot(key string) Timer {
	t := Timer{
		Key:        key,
		Start:      r.start.UTC(),
		Finished:   r.finished,
		localTimer: r.local.snapshot(),
	}
	if r.finished {
		t.End = r.end.UTC()
		t.Elapsed = r.elapsed.duration()
	}
	return t
}

// primary selects the absolute-clock measurement of a record.
func primary(r record) (span, bool) {
	return r.elapsed, r.finished
}
