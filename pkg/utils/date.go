package utils

import (
	"fmt"
	"time"
)

// DateRange is a half-open [From, To) interval. A zero From means unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if r.From.IsZero() {
		return true
	}
	return !t.Before(r.From) && t.Before(r.To)
}

const (
	BucketToday = "today"
	BucketWeek  = "week"
	BucketMonth = "month"
	BucketAll   = "all"
)

// DateBucketRange resolves a bucket name to a range around now in loc.
// Weeks start on Monday.
func DateBucketRange(bucket string, now time.Time, loc *time.Location) (DateRange, error) {
	now = now.In(loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch bucket {
	case "", BucketAll:
		return DateRange{}, nil
	case BucketToday:
		return DateRange{From: startOfDay, To: startOfDay.AddDate(0, 0, 1)}, nil
	case BucketWeek:
		offset := (int(startOfDay.Weekday()) + 6) % 7
		from := startOfDay.AddDate(0, 0, -offset)
		return DateRange{From: from, To: from.AddDate(0, 0, 7)}, nil
	case BucketMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{From: from, To: from.AddDate(0, 1, 0)}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown date bucket %q", bucket)
	}
}

// LoadLocation falls back to UTC when name cannot be resolved.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}

	return loc
}
