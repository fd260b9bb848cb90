package dto_test

import (
	"net/http"
	"testing"
	"time"

	"sportsassist/internal/domains/camp/model"
	"sportsassist/internal/domains/camp/model/dto"
	"sportsassist/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestCreateCampRequest_Schedule(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateCampRequest
		wantErr string
	}{
		{
			name: "valid with window",
			req: dto.CreateCampRequest{
				StartDate:           "2030-07-01",
				EndDate:             "2030-07-01",
				RegistrationOpenAt:  "2030-03-01T09:00:00Z",
				RegistrationCloseAt: "2030-06-15T23:59:00Z",
			},
		},
		{
			name:    "end before start",
			req:     dto.CreateCampRequest{StartDate: "2030-07-02", EndDate: "2030-07-01"},
			wantErr: "end_date must not be before start_date",
		},
		{
			name: "close before open",
			req: dto.CreateCampRequest{
				StartDate:           "2030-07-01",
				EndDate:             "2030-07-05",
				RegistrationOpenAt:  "2030-05-01T00:00:00Z",
				RegistrationCloseAt: "2030-04-01T00:00:00Z",
			},
			wantErr: "registration_close_at must be after registration_open_at",
		},
		{
			name: "opens after start",
			req: dto.CreateCampRequest{
				StartDate:          "2030-07-01",
				EndDate:            "2030-07-05",
				RegistrationOpenAt: "2030-07-02T00:00:00Z",
			},
			wantErr: "registration must open before the camp starts",
		},
		{
			name:    "min above max",
			req:     dto.CreateCampRequest{StartDate: "2030-07-01", EndDate: "2030-07-05", MinAge: intPtr(10), MaxAge: intPtr(9)},
			wantErr: "min_age must not exceed max_age",
		},
		{
			name:    "malformed timestamp",
			req:     dto.CreateCampRequest{StartDate: "2030-07-01", EndDate: "2030-07-05", RegistrationOpenAt: "tomorrow"},
			wantErr: "registration window must be RFC 3339 timestamps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := tt.req.Schedule()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.False(t, schedule.StartDate.IsZero())
			assert.NotNil(t, schedule.RegistrationOpenAt)
		})
	}
}

func TestUpdateCampRequest_Apply(t *testing.T) {
	current := model.Camp{
		StartDate: time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2030, 7, 5, 0, 0, 0, 0, time.UTC),
		MinAge:    intPtr(8),
	}

	req := dto.UpdateCampRequest{EndDate: "2030-07-10", Name: "  Soccer <b>Week</b> "}
	require.NoError(t, req.Apply(current))
	require.NotNil(t, req.EndDateValue)
	assert.Equal(t, 10, req.EndDateValue.Day())
	assert.Equal(t, "Soccer Week", req.Name)
	assert.Nil(t, req.StartDateValue)

	reversed := dto.UpdateCampRequest{MaxAge: intPtr(6)}
	assert.Error(t, reversed.Apply(current))
}

func TestCampResponse_WithAvailability(t *testing.T) {
	res := dto.CampResponse{}
	res.FromModel(model.Camp{Capacity: 10, StartDate: time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC)})

	res.WithAvailability(4)
	assert.Equal(t, 6, *res.SpotsRemaining)
	assert.Equal(t, "2030-07-01", res.StartDate)
	assert.Nil(t, res.RegistrationOpenAt)

	res.WithAvailability(12)
	assert.Equal(t, 0, *res.SpotsRemaining)
}
