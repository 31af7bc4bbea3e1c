package timeutil

import "time"

// Now returns the current local time. Kept behind a variable so tests
// can pin the clock.
var Now = time.Now

// DayOf truncates t to midnight local time
func DayOf(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// SameDay reports whether a and b fall on the same local calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// FromUnixMillis converts a unix-milliseconds timestamp (the token
// wire format) to a time.Time
func FromUnixMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
