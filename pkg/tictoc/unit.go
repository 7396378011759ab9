package tictoc

import (
	"fmt"
	"strings"
	"time"

	"github.com/all-dot-files/tictoc/pkg/errors"
)

// Unit selects the granularity Elapsed reports in. The zero Unit means
// DefaultUnit.
type Unit int

const (
	Nanoseconds Unit = iota + 1
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
	Weeks
)

// DefaultUnit is used when a caller passes the zero Unit.
const DefaultUnit = Milliseconds

// Sub-second units are defined by their length in nanoseconds, the rest by
// their length in seconds.
var unitDefs = [...]struct {
	name  string
	abbr  string
	nanos int64
	secs  int64
}{
	Nanoseconds:  {"nanoseconds", "ns", 1, 0},
	Microseconds: {"microseconds", "us", 1e3, 0},
	Milliseconds: {"milliseconds", "ms", 1e6, 0},
	Seconds:      {"seconds", "s", 0, 1},
	Minutes:      {"minutes", "m", 0, 60},
	Hours:        {"hours", "h", 0, 60 * 60},
	Days:         {"days", "d", 0, 24 * 60 * 60},
	Weeks:        {"weeks", "w", 0, 7 * 24 * 60 * 60},
}

var unitAliases = map[string]Unit{
	"µs":     Microseconds,
	"μs":     Microseconds,
	"usec":   Microseconds,
	"micros": Microseconds,
	"msec":   Milliseconds,
	"millis": Milliseconds,
	"nanos":  Nanoseconds,
	"sec":    Seconds,
	"secs":   Seconds,
	"min":    Minutes,
	"mins":   Minutes,
	"hr":     Hours,
	"hrs":    Hours,
	"wk":     Weeks,
	"wks":    Weeks,
}

// Units returns every supported unit, finest first.
func Units() []Unit {
	return []Unit{Nanoseconds, Microseconds, Milliseconds, Seconds, Minutes, Hours, Days, Weeks}
}

// Valid reports whether u is a supported unit or the zero Unit.
func (u Unit) Valid() bool {
	return u == 0 || (u >= Nanoseconds && u <= Weeks)
}

func (u Unit) resolve() (Unit, error) {
	if !u.Valid() {
		return 0, errors.Newf(errors.ErrInvalidInput, "tictoc.Unit", "unknown time unit %d", int(u))
	}
	if u == 0 {
		return DefaultUnit, nil
	}
	return u, nil
}

// String returns the unit abbreviation, e.g. "ms".
func (u Unit) String() string {
	r, err := u.resolve()
	if err != nil {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitDefs[r].abbr
}

// Name returns the plural unit name, e.g. "milliseconds".
func (u Unit) Name() string {
	r, err := u.resolve()
	if err != nil {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitDefs[r].name
}

// Duration returns the length of one u.
func (u Unit) Duration() time.Duration {
	r, err := u.resolve()
	if err != nil {
		return 0
	}
	d := unitDefs[r]
	if d.secs > 0 {
		return time.Duration(d.secs) * time.Second
	}
	return time.Duration(d.nanos)
}

// ParseUnit accepts abbreviations ("ms"), plural or singular names
// ("milliseconds", "millisecond") and a few common aliases, ignoring case.
// The empty string yields DefaultUnit.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultUnit, nil
	}
	for _, u := range Units() {
		d := unitDefs[u]
		if s == d.abbr || s == d.name || s == strings.TrimSuffix(d.name, "s") {
			return u, nil
		}
	}
	if u, ok := unitAliases[s]; ok {
		return u, nil
	}
	return 0, errors.Newf(errors.ErrInvalidInput, "tictoc.ParseUnit", "unknown time unit %q", s).
		WithSuggestion("use one of ns, us, ms, s, m, h, d, w")
}

func (u Unit) MarshalText() ([]byte, error) {
	if _, err := u.resolve(); err != nil {
		return nil, err
	}
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
