package domain

// Role is the capability level of whoever is making a request.
type Role string

const (
	RoleAnonymous     Role = "anonymous"
	RoleUser          Role = "user"
	RoleAdministrator Role = "administrator"
)

// ParseRole maps a stored or signed role string back to a Role. Anything
// unknown degrades to RoleAnonymous.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser:
		return RoleUser
	case RoleAdministrator:
		return RoleAdministrator
	default:
		return RoleAnonymous
	}
}

// Caller is the identity attached to a single request.
type Caller struct {
	UserID   string
	Username string
	Role     Role
}

// Anonymous returns the caller used when no valid session is present.
func Anonymous() Caller {
	return Caller{Role: RoleAnonymous}
}

func (c Caller) IsAuthenticated() bool {
	return c.Role != RoleAnonymous && c.UserID != ""
}

func (c Caller) IsAdministrator() bool {
	return c.IsAuthenticated() && c.Role == RoleAdministrator
}

// Owns reports whether the caller is the owner of the given record.
func (c Caller) Owns(f *FormRecord) bool {
	return c.IsAuthenticated() && f != nil && f.OwnerID == c.UserID
}
