package domain

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberPrefix = "ORD"

// OrderNumber formats ORD + YYMMDD + a zero-padded 4 digit sequence.
func OrderNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("%s%s%04d", orderNumberPrefix, day.Format("060102"), sequence)
}

// RandomOrderNumber is the fallback used when the daily count is unavailable.
// The suffix is drawn from 1000..9999.
func RandomOrderNumber(day time.Time, rng *rand.Rand) string {
	var n int
	if rng != nil {
		n = rng.Intn(9000)
	} else {
		n = rand.Intn(9000)
	}
	return OrderNumber(day, 1000+n)
}

// DayBounds returns [start, end) of the calendar day containing t in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
