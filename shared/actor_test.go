package shared_test

import (
	"context"
	"testing"

	"sportsassist/shared"
	"sportsassist/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestActorFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
	ctx = context.WithValue(ctx, constant.ContextKeyOrganizationID, "org-1")

	actor := shared.ActorFromContext(ctx)

	assert.Equal(t, shared.Actor{UserID: "user-1", Role: constant.RoleStaff, OrganizationID: "org-1"}, actor)
	assert.Equal(t, shared.Actor{}, shared.ActorFromContext(context.Background()))
}

func TestActor_Permissions(t *testing.T) {
	superAdmin := shared.Actor{UserID: "root", Role: constant.RoleSuperAdmin}
	admin := shared.Actor{UserID: "a1", Role: constant.RoleAdmin, OrganizationID: "org-1"}
	staff := shared.Actor{UserID: "s1", Role: constant.RoleStaff, OrganizationID: "org-1"}
	parent := shared.Actor{UserID: "p1", Role: constant.RoleParent}
	orphanStaff := shared.Actor{UserID: "s2", Role: constant.RoleStaff}

	tests := []struct {
		name      string
		actor     shared.Actor
		orgID     string
		member    bool
		orgAdmin  bool
		parentID  string
		ownParent bool
	}{
		{name: "superadmin", actor: superAdmin, orgID: "org-9", member: true, orgAdmin: true, parentID: "p1", ownParent: true},
		{name: "admin own org", actor: admin, orgID: "org-1", member: true, orgAdmin: true, parentID: "p1", ownParent: false},
		{name: "admin other org", actor: admin, orgID: "org-2", member: false, orgAdmin: false, parentID: "a1", ownParent: true},
		{name: "staff own org", actor: staff, orgID: "org-1", member: true, orgAdmin: false, parentID: "p1", ownParent: false},
		{name: "staff without org", actor: orphanStaff, orgID: "", member: false, orgAdmin: false, parentID: "", ownParent: false},
		{name: "parent", actor: parent, orgID: "org-1", member: false, orgAdmin: false, parentID: "p1", ownParent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.member, tt.actor.IsOrganizationMember(tt.orgID))
			assert.Equal(t, tt.orgAdmin, tt.actor.IsOrganizationAdmin(tt.orgID))
			assert.Equal(t, tt.ownParent, tt.actor.CanAccessParentData(tt.parentID))

			if tt.member {
				assert.NoError(t, tt.actor.RequireOrganizationMember(tt.orgID))
			} else {
				assert.Error(t, tt.actor.RequireOrganizationMember(tt.orgID))
			}

			if tt.orgAdmin {
				assert.NoError(t, tt.actor.RequireOrganizationAdmin(tt.orgID))
			} else {
				assert.Error(t, tt.actor.RequireOrganizationAdmin(tt.orgID))
			}
		})
	}
}
