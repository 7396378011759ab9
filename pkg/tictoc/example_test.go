package tictoc_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

func ExampleRegistry() {
	mock := clock.NewMock()
	reg := tictoc.New(tictoc.WithClock(mock))

	reg.Start("")
	reg.Start("query")
	mock.Add(250 * time.Millisecond)
	reg.Stop("query")
	mock.Add(2 * time.Second)
	reg.Stop("")

	query, _ := reg.Elapsed("query", tictoc.Milliseconds)
	total, _ := reg.Elapsed("", tictoc.Seconds)
	fmt.Println(query, "ms")
	fmt.Println(total, "s")
	// Output:
	// 250 ms
	// 2 s
}

func ExampleRegistry_Elapsed_running() {
	reg := tictoc.New()
	reg.Start("upload")

	_, err := reg.Elapsed("upload", tictoc.Seconds)
	fmt.Println(errors.Is(err, tictoc.ErrTimerResult))
	// Output: true
}
