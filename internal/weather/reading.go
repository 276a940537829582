// Package weather holds the temperature-observation boundary of the
// pipeline. Retrieval services live outside this repository; temperatures
// arrive through file imports or the local store.
package weather

import "time"

// Reading is a single observed outdoor temperature.
type Reading struct {
	Time  time.Time
	TempF float64
}
