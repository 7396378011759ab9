// Package tictoc is a named-timer registry: start a timer under a key, stop
// it later, and read the elapsed time in a chosen unit.
//
//	reg := tictoc.New()
//	reg.Start("")        // default timer
//	reg.Start("query")
//	...
//	reg.Stop("query")
//	ms, err := reg.Elapsed("query", tictoc.Milliseconds)
//
// Each key holds a single measurement cycle. A key moves from absent to
// running on Start and from running to finished on Stop; Start on an occupied
// key fails with ErrTimerAlreadyExists. Stopping a finished timer again
// re-finishes it at the current time.
//
// The empty key addresses DefaultKey, so a single "fire and forget" timer can
// live next to named ones in the same registry.
//
// A Registry is not safe for concurrent use. Callers sharing one between
// goroutines must guard it themselves.
//
// Building with the localtime tag adds a parallel measurement taken from
// local wall-clock readings, exposed through Mark.Local, the Local* fields of
// Timer and Registry.ElapsedLocal. Wall-clock readings follow system clock
// adjustments; the primary measurement uses the monotonic reading when the
// clock provides one. Neither measurement corrects for clock changes made
// while a timer is running.
package tictoc
