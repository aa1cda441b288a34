// Package pricing computes rental quotes from a vehicle's hourly and daily
// rates. Durations are taken from the exact millisecond difference between
// the booking window's endpoints; partial hours and days are charged in full.
package pricing

import (
	"fmt"
	"time"
)

const (
	millisPerHour = 60 * 60 * 1000
	millisPerDay  = 24 * millisPerHour
)

// Quote returns the total price for the half-open window [start, end).
// Windows of 24 hours or more are billed per day (rounded up), shorter
// windows per hour (rounded up).
func Quote(start, end time.Time, pricePerHour, pricePerDay int64) (int64, error) {
	millis := end.Sub(start).Milliseconds()
	if millis <= 0 {
		return 0, fmt.Errorf("end time must be after start time")
	}

	if millis >= millisPerDay {
		days := ceilDiv(millis, millisPerDay)
		return days * pricePerDay, nil
	}
	hours := ceilDiv(millis, millisPerHour)
	return hours * pricePerHour, nil
}

func ceilDiv(n, d int64) int64 {
	return (n + d - 1) / d
}
