package conversation

// Role identifies who produced a turn. Values match the wire roles
// expected by the generative backend.
type Role string

const (
	// RoleUser marks a turn authored by the conversation owner.
	RoleUser Role = "user"
	// RoleModel marks a turn authored by the generative backend.
	RoleModel Role = "model"
)

// Turn is one role-tagged message in a conversation history.
type Turn struct {
	Role Role
	Text string
}
