// Package priority derives the urgency tier of an order item from its delivery date.
//
// The tier is a view, not state: it is recomputed on every read and may only be cached
// as a materialization that is dropped whenever the delivery date changes.
package priority

import (
	"fmt"
	"math"
	"time"

	"printshop/internal/pkg/errs"
)

// Tier is the urgency label shown next to an item.
type Tier string

const (
	Red    Tier = "red"
	Yellow Tier = "yellow"
	Blue   Tier = "blue"
)

const (
	// yellowFromDays is the first day count labelled yellow.
	yellowFromDays = 3
	// blueAfterDays is the last day count labelled yellow.
	blueAfterDays = 5
)

// Compute returns the tier for deliveryDate as seen on today.
//
//	daysUntil > 5       -> Blue
//	3 <= daysUntil <= 5 -> Yellow
//	daysUntil < 3       -> Red (includes overdue)
//
// The delivery date is a calendar day; both dates are truncated to midnight of their own
// calendar day.
func Compute(deliveryDate, today time.Time) Tier {
	days := DaysUntil(deliveryDate, today)
	switch {
	case days > blueAfterDays:
		return Blue
	case days >= yellowFromDays:
		return Yellow
	default:
		return Red
	}
}

// DaysUntil is ceil((deliveryDate@00:00 - today@00:00) / 24h).
func DaysUntil(deliveryDate, today time.Time) int {
	from := midnight(today)
	to := midnight(deliveryDate)
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// midnight re-anchors the calendar day in UTC so DST shifts never add or drop an hour.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse converts a stored tier back into a Tier.
func Parse(s string) (Tier, error) {
	switch t := Tier(s); t {
	case Red, Yellow, Blue:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a priority tier", s))
	}
}

func (t Tier) String() string {
	return string(t)
}
