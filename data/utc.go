package data

import "time"

// Now is the single clock source for stored instants. Everything is kept in
// UTC; zone conversion happens at the materialization boundary.
func Now() time.Time {
	return time.Now().UTC()
}

func DateNow() time.Time {
	return Now().Truncate(24 * time.Hour)
}
