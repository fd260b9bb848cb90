package timezone_test

import (
	"testing"
	"time"

	"sportsassist/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinJakarta(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	timezone.SetLocation(loc)
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	return loc
}

func TestNow_UsesApplicationZone(t *testing.T) {
	loc := pinJakarta(t)

	assert.Equal(t, loc, timezone.Now().Location())
	assert.Equal(t, loc, timezone.Location())
}

func TestFormat(t *testing.T) {
	pinJakarta(t)

	instant := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-02 03:00", timezone.Format(instant, "2006-01-02 15:04"))
}

func TestParseDate(t *testing.T) {
	loc := pinJakarta(t)

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "calendar date", value: "2026-07-04", want: time.Date(2026, 7, 4, 0, 0, 0, 0, loc)},
		{name: "leap day", value: "2028-02-29", want: time.Date(2028, 2, 29, 0, 0, 0, 0, loc)},
		{name: "not a leap year", value: "2026-02-29", wantErr: true},
		{name: "timestamp is rejected", value: "2026-07-04T10:00:00Z", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := pinJakarta(t)

	// 18:30 UTC is already the next day in Jakarta.
	got := timezone.StartOfDay(time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 6, 16, 0, 0, 0, 0, loc), got)
}

func TestAgeOn(t *testing.T) {
	pinJakarta(t)

	birth := time.Date(2016, 8, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		on   time.Time
		want int
	}{
		{name: "day before birthday", on: time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC), want: 9},
		{name: "on birthday", on: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), want: 10},
		{name: "earlier month", on: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), want: 9},
		{name: "later month", on: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), want: 10},
		{name: "before birth", on: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.AgeOn(birth, tt.on))
		})
	}
}
