package shared

import (
	"context"

	"sportsassist/shared/constant"
	"sportsassist/shared/failure"
)

// Actor is the authenticated caller as placed in the request context by the
// auth middleware.
type Actor struct {
	UserID         string
	Role           string
	OrganizationID string
}

func ActorFromContext(ctx context.Context) Actor {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	orgID, _ := ctx.Value(constant.ContextKeyOrganizationID).(string)

	return Actor{
		UserID:         userID,
		Role:           role,
		OrganizationID: orgID,
	}
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == constant.RoleSuperAdmin
}

func (a Actor) IsParent() bool {
	return a.Role == constant.RoleParent
}

// IsOrganizationMember reports whether the caller is admin or staff of orgID.
// Superadmins are members of every organization.
func (a Actor) IsOrganizationMember(orgID string) bool {
	if a.IsSuperAdmin() {
		return true
	}

	if a.Role != constant.RoleAdmin && a.Role != constant.RoleStaff {
		return false
	}

	return a.OrganizationID != constant.Empty && a.OrganizationID == orgID
}

// IsOrganizationAdmin reports whether the caller may change organization
// settings such as custom fields and users.
func (a Actor) IsOrganizationAdmin(orgID string) bool {
	if a.IsSuperAdmin() {
		return true
	}

	return a.Role == constant.RoleAdmin && a.OrganizationID != constant.Empty && a.OrganizationID == orgID
}

// CanAccessParentData reports whether the caller may read data owned by parentID.
func (a Actor) CanAccessParentData(parentID string) bool {
	if a.IsSuperAdmin() {
		return true
	}

	return a.UserID != constant.Empty && a.UserID == parentID
}

// RequireOrganizationMember returns a forbidden failure when the caller is not
// admin or staff of orgID.
func (a Actor) RequireOrganizationMember(orgID string) error {
	if !a.IsOrganizationMember(orgID) {
		return failure.ResourceRestrictedError
	}

	return nil
}

func (a Actor) RequireOrganizationAdmin(orgID string) error {
	if !a.IsOrganizationAdmin(orgID) {
		return failure.ResourceRestrictedError
	}

	return nil
}
