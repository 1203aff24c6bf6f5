package dateutil

import "time"

// CurrentWeek returns Monday 00:00:00 UTC of the ISO week containing t.
func CurrentWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	monday := t.AddDate(0, 0, 1-weekday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// NextWeek returns Monday 00:00:00 UTC of the ISO week after the one
// containing t.
func NextWeek(t time.Time) time.Time {
	return CurrentWeek(t).AddDate(0, 0, 7)
}

func BeginningOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NextHour(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC).Add(time.Hour)
}

func NextMinute(t time.Time) time.Time {
	t = t.UTC()
	return t.Truncate(time.Minute).Add(time.Minute)
}
