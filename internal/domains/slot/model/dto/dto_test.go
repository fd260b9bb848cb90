package dto_test

import (
	"net/http"
	"testing"
	"time"

	"sportsassist/internal/domains/slot/model"
	"sportsassist/internal/domains/slot/model/dto"
	"sportsassist/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSlotRequest_Window(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid window", start: "2026-07-01T09:00:00Z", end: "2026-07-01T10:00:00Z"},
		{name: "end before start", start: "2026-07-01T10:00:00Z", end: "2026-07-01T09:00:00Z", wantErr: true},
		{name: "zero length", start: "2026-07-01T10:00:00Z", end: "2026-07-01T10:00:00Z", wantErr: true},
		{name: "not a timestamp", start: "tomorrow", end: "2026-07-01T10:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateSlotRequest{StartTime: tt.start, EndTime: tt.end}

			_, _, err := req.Window()

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUpdateSlotRequest_Apply(t *testing.T) {
	current := model.Slot{
		StartTime: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
	}

	req := dto.UpdateSlotRequest{EndTime: "2026-07-01T11:30:00Z", Title: " <b>Goalkeeping</b> "}
	require.NoError(t, req.Apply(current))
	require.NotNil(t, req.EndTimeValue)
	assert.Nil(t, req.StartTimeValue)
	assert.Equal(t, 11, req.EndTimeValue.Hour())
	assert.Equal(t, "Goalkeeping", req.Title)

	req = dto.UpdateSlotRequest{StartTime: "2026-07-01T10:30:00Z"}
	assert.Error(t, req.Apply(current))
}

func TestSlotFilter_FilterGroup(t *testing.T) {
	group, err := dto.SlotFilter{
		CampID: "camp-1",
		Status: "open",
		From:   "2026-07-01T00:00:00Z",
	}.FilterGroup()
	require.NoError(t, err)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(availability_slots.camp_id = :camp_id AND availability_slots.status = :status AND availability_slots.start_time >= :from)", where)
	assert.Equal(t, "camp-1", args["camp_id"])
	assert.Contains(t, args, "from")

	_, err = dto.SlotFilter{To: "later"}.FilterGroup()
	assert.Error(t, err)
}

func TestSlotResponse_WithAvailability(t *testing.T) {
	res := dto.SlotResponse{MaxBookings: 3}

	res.WithAvailability(1)
	assert.Equal(t, 1, *res.ConfirmedCount)
	assert.Equal(t, 2, *res.Remaining)

	res.WithAvailability(5)
	assert.Equal(t, 0, *res.Remaining)
}
