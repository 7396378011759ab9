package tictoc

import (
	"math"
	"testing"
	"time"

	"github.com/all-dot-files/tictoc/pkg/errors"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"", Milliseconds},
		{"ns", Nanoseconds},
		{"nanosecond", Nanoseconds},
		{"us", Microseconds},
		{"µs", Microseconds},
		{"Microseconds", Microseconds},
		{"ms", Milliseconds},
		{"millis", Milliseconds},
		{"s", Seconds},
		{"sec", Seconds},
		{"m", Minutes},
		{"minute", Minutes},
		{"h", Hours},
		{"HOURS", Hours},
		{"d", Days},
		{"day", Days},
		{" w ", Weeks},
		{"weeks", Weeks},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		if err != nil {
			t.Errorf("ParseUnit(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUnit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseUnit("fortnight"); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("ParseUnit(fortnight) error = %v, want INVALID_INPUT", err)
	}
}

func TestUnitStringRoundTrip(t *testing.T) {
	for _, u := range Units() {
		text, err := u.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", u, err)
		}
		var back Unit
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) failed: %v", text, err)
		}
		if back != u {
			t.Errorf("round trip of %v gave %v", u, back)
		}
	}

	if Unit(0).String() != "ms" {
		t.Errorf("zero Unit String() = %q, want ms", Unit(0).String())
	}
	if Unit(42).String() != "Unit(42)" {
		t.Errorf("invalid Unit String() = %q", Unit(42).String())
	}
	if _, err := Unit(42).MarshalText(); err == nil {
		t.Error("MarshalText of invalid unit should fail")
	}
}

func TestUnitDuration(t *testing.T) {
	want := map[Unit]time.Duration{
		Nanoseconds:  time.Nanosecond,
		Microseconds: time.Microsecond,
		Milliseconds: time.Millisecond,
		Seconds:      time.Second,
		Minutes:      time.Minute,
		Hours:        time.Hour,
		Days:         24 * time.Hour,
		Weeks:        7 * 24 * time.Hour,
	}
	for u, d := range want {
		if got := u.Duration(); got != d {
			t.Errorf("%v.Duration() = %v, want %v", u, got, d)
		}
	}
}

func TestSpanConversionTable(t *testing.T) {
	d := 7*24*time.Hour + 24*time.Hour + time.Hour + time.Minute + time.Second +
		time.Millisecond + time.Microsecond + time.Nanosecond
	s := spanOf(d)

	want := map[Unit]int64{
		Nanoseconds:  int64(d),
		Microseconds: int64(d / time.Microsecond),
		Milliseconds: int64(d / time.Millisecond),
		Seconds:      int64(d / time.Second),
		Minutes:      int64(d / time.Minute),
		Hours:        int64(d / time.Hour),
		Days:         8,
		Weeks:        1,
	}
	for u, w := range want {
		got, ok := s.in(u)
		if !ok {
			t.Errorf("%v overflowed", u)
			continue
		}
		if got != w {
			t.Errorf("in(%v) = %d, want %d", u, got, w)
		}
	}

	neg := spanOf(-d)
	for u, w := range want {
		if got, _ := neg.in(u); got != -w {
			t.Errorf("negative in(%v) = %d, want %d", u, got, -w)
		}
	}
}

func TestSpanOverflowEdges(t *testing.T) {
	top := spanOf(time.Duration(math.MaxInt64))
	if got, ok := top.in(Nanoseconds); !ok || got != math.MaxInt64 {
		t.Errorf("max span in ns = %d, %v", got, ok)
	}

	over := span{sec: math.MaxInt64 / int64(time.Second), nsec: 999_999_999}
	if _, ok := over.in(Nanoseconds); ok {
		t.Error("expected nanosecond overflow")
	}
	if got, ok := over.in(Seconds); !ok || got != math.MaxInt64/int64(time.Second) {
		t.Errorf("seconds = %d, %v", got, ok)
	}
	if over.duration() != maxDuration {
		t.Error("duration should saturate high")
	}

	under := span{sec: math.MinInt64 / int64(time.Second), nsec: -999_999_999}
	if _, ok := under.in(Nanoseconds); ok {
		t.Error("expected negative nanosecond overflow")
	}
	if under.duration() != minDuration {
		t.Error("duration should saturate low")
	}
}

func TestBetweenNormalizesWallSpan(t *testing.T) {
	start := time.Unix(0, 900_000_000)
	end := start.AddDate(400, 0, 0).Add(-800 * time.Millisecond)

	s := between(start, end)
	if s.sec <= 0 || s.nsec < 0 || s.nsec >= int64(time.Second) {
		t.Fatalf("span not normalized: %+v", s)
	}
	if s.nsec != 200_000_000 {
		t.Errorf("nsec = %d, want 200000000", s.nsec)
	}

	back := between(end, start)
	if back.sec != -s.sec || back.nsec != -s.nsec {
		t.Errorf("reverse span = %+v, want negation of %+v", back, s)
	}
}
