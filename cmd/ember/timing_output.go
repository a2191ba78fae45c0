package main

import (
	"fmt"
	"io"
	"time"

	"ember/internal/buildpipeline"
)

// printTimings prints the summed duration of every recorded stage across
// all files, then the wall-clock total.
func printTimings(out io.Writer, timings buildpipeline.Timings, total time.Duration) {
	for _, stage := range buildpipeline.Stages() {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stage.Verb(), toMillis(timings.Duration(stage)))
		}
	}
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(total))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
