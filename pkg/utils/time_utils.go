package utils

import "time"

// Pakistan time (PKT, +05:00)
var pkLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Karachi"); err == nil {
		return loc
	}
	return time.FixedZone("PKT", 5*3600)
}()

func Location(name string) *time.Location {
	if name == "" {
		return pkLoc
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return pkLoc
}

// Today is the current calendar date in loc, as UTC midnight so it compares
// directly with parsed YYYY-MM-DD dates.
func Today(loc *time.Location) time.Time {
	y, m, d := time.Now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TripID is the creation time in Unix milliseconds.
func TripID(t time.Time) string {
	return formatInt(t.UnixMilli())
}

func FormatDisplayPK(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(pkLoc).Format("02 Jan 2006, 03:04 PM")
}
