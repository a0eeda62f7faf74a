package oxml

import (
	"time"
)

var supportedDateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
}

var epoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

func ParseDate(str string) (time.Time, error) {
	var (
		when time.Time
		err  error
	)
	for _, f := range supportedDateFormats {
		when, err = time.Parse(f, str)
		if err == nil {
			break
		}
	}
	return when, err
}

// Serial gives the number of days elapsed since the epoch of spreadsheet
// dates, the fractional part being the time of the day.
func Serial(when time.Time) float64 {
	when = time.Date(when.Year(), when.Month(), when.Day(), when.Hour(), when.Minute(), when.Second(), 0, time.UTC)
	return when.Sub(epoch).Hours() / 24
}
