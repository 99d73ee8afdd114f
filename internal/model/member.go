package model

// UserID uniquely identifies a user across the system.
// Identity is verified externally; the engine only carries it.
type UserID string

// MemberRole is the role a member holds within their team
type MemberRole string

const (
	RoleUnassigned MemberRole = "unassigned"
	RoleSpymaster  MemberRole = "spymaster"
	RoleOperative  MemberRole = "operative"
)

// Member represents a user's membership in a party
type Member struct {
	UserID    UserID
	Username  string
	AvatarURL string
	Role      MemberRole
	Ready     bool
}
