// Package timezone pins wall-clock handling to the configured APP_TIMEZONE.
// Camp dates, registration windows and ages are all evaluated in that zone.
package timezone

import (
	"sync"
	"time"

	"sportsassist/config"
	"sportsassist/shared/constant"
)

var (
	once     sync.Once
	mu       sync.RWMutex
	location *time.Location
)

func load() {
	loc := config.Get().Timezone()

	mu.Lock()
	if location == nil {
		location = loc
	}
	mu.Unlock()
}

// Location returns the application timezone, loading it on first use.
func Location() *time.Location {
	once.Do(load)

	mu.RLock()
	defer mu.RUnlock()

	return location
}

// SetLocation overrides the application timezone. Tests use it to pin a zone.
func SetLocation(loc *time.Location) {
	once.Do(func() {})

	mu.Lock()
	location = loc
	mu.Unlock()
}

func Now() time.Time {
	return time.Now().In(Location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(Location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Parse reads value as wall-clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Location())
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return Parse(constant.DateOnlyFormat, value)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// AgeOn returns the full years a person born on birth has completed on day.
// A child's eligibility for a camp is its age on the camp's first day.
func AgeOn(birth, day time.Time) int {
	birth = ToAppTime(birth)
	day = ToAppTime(day)

	years := day.Year() - birth.Year()
	if day.Month() < birth.Month() || (day.Month() == birth.Month() && day.Day() < birth.Day()) {
		years--
	}

	return years
}
