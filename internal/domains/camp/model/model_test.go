package model_test

import (
	"testing"
	"time"

	"sportsassist/internal/domains/camp/model"

	"github.com/stretchr/testify/assert"
)

func TestCamp_RegistrationOpen(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	open := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	closeAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	camp := model.Camp{StartDate: start, RegistrationOpenAt: &open, RegistrationCloseAt: &closeAt}

	assert.False(t, camp.RegistrationOpen(open.Add(-time.Hour)))
	assert.True(t, camp.RegistrationOpen(open.Add(time.Hour)))
	assert.False(t, camp.RegistrationOpen(closeAt.Add(time.Hour)))

	unbounded := model.Camp{StartDate: start}
	assert.True(t, unbounded.RegistrationOpen(start.Add(-time.Hour)))
	assert.False(t, unbounded.RegistrationOpen(start.Add(time.Hour)))
}

func TestCamp_AcceptsAge(t *testing.T) {
	minAge, maxAge := 8, 12
	camp := model.Camp{MinAge: &minAge, MaxAge: &maxAge}

	assert.False(t, camp.AcceptsAge(7))
	assert.True(t, camp.AcceptsAge(8))
	assert.True(t, camp.AcceptsAge(12))
	assert.False(t, camp.AcceptsAge(13))
	assert.True(t, model.Camp{}.AcceptsAge(3))
}
