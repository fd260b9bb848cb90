package dto_test

import (
	"net/http"
	"testing"

	"sportsassist/internal/domains/registration/model"
	"sportsassist/internal/domains/registration/model/dto"
	"sportsassist/shared/constant"
	"sportsassist/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestCreateRegistrationRequest_ToModel(t *testing.T) {
	req := dto.CreateRegistrationRequest{CampID: "camp-1", ChildID: "child-1", Notes: " <script>x</script>Picks up at 4 "}

	registration := req.ToModel("parent-1", "parent-1", constant.RegistrationStatusWaitlisted)

	assert.NotEmpty(t, registration.ID)
	assert.Equal(t, constant.RegistrationStatusWaitlisted, registration.Status)
	assert.Equal(t, constant.PaymentStatusUnpaid, registration.PaymentStatus)
	assert.Equal(t, "Picks up at 4", registration.Notes)
	assert.Equal(t, "parent-1", registration.CreatedBy)
}

func TestUpdateRegistrationStatusRequest_Check(t *testing.T) {
	empty := dto.UpdateRegistrationStatusRequest{}
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(empty.Check()))

	paid := dto.UpdateRegistrationStatusRequest{PaymentStatus: constant.PaymentStatusPaid}
	assert.NoError(t, paid.Check())
}

func TestRosterResponse_FromModels(t *testing.T) {
	res := dto.RosterResponse{}
	res.FromModels("camp-1", []model.Detail{
		{ID: "a", Status: constant.RegistrationStatusConfirmed},
		{ID: "b", Status: constant.RegistrationStatusConfirmed},
		{ID: "c", Status: constant.RegistrationStatusWaitlisted},
		{ID: "d", Status: constant.RegistrationStatusPending},
	})

	assert.Equal(t, "camp-1", res.CampID)
	assert.Equal(t, 2, res.Confirmed)
	assert.Equal(t, 1, res.Waitlisted)
	assert.Len(t, res.Entries, 4)
}
