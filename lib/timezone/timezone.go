package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Africa/Nairobi")
	if err != nil {
		panic(err)
	}
}

// sittings are dated in Nairobi time, comparing them against the machine's
// local date can be off by a day.
func Now() time.Time {
	return time.Now().In(Location)
}

// CurrentWeek returns the monday and sunday (at midnight) of the week `now`
// is in.
func CurrentWeek(now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
