package auth

// Privilege is the caller's highest standing, resolved once per request from
// the roles attached to the authenticated user.
type Privilege int

const (
	PrivilegeUser Privilege = iota
	PrivilegeOwner
	PrivilegeAdmin
)

// Role names as stored in the roles table.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

func (p Privilege) String() string {
	switch p {
	case PrivilegeAdmin:
		return RoleAdmin
	case PrivilegeOwner:
		return RoleOwner
	default:
		return RoleUser
	}
}

// PrivilegeFromRoles picks the highest privilege among role names. Unknown
// names are ignored.
func PrivilegeFromRoles(roles []string) Privilege {
	p := PrivilegeUser
	for _, r := range roles {
		switch r {
		case RoleAdmin:
			return PrivilegeAdmin
		case RoleOwner:
			p = PrivilegeOwner
		}
	}
	return p
}

// Caller is the established identity of whoever issued the request.
type Caller struct {
	UserID    int64
	Privilege Privilege
}

func (c Caller) IsAdmin() bool {
	return c.Privilege == PrivilegeAdmin
}

// Owns reports whether the caller is the claimed owner recorded as ownerID.
func (c Caller) Owns(ownerID *int64) bool {
	return ownerID != nil && *ownerID == c.UserID && c.UserID != 0
}

// CanManage is true for admins and for the claimed owner.
func (c Caller) CanManage(ownerID *int64) bool {
	return c.IsAdmin() || c.Owns(ownerID)
}
