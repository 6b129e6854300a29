package domain

// Role is the kind of account behind a session.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// User is the persisted view of the logged-in account.
type User struct {
	Email    string
	Name     string
	Initials string
	Role     Role
}

// Session is the currently authenticated user together with its token.
type Session struct {
	User
	Token string

	// Institutional is false when the login used an address outside the
	// institutional domains and non-institutional logins were allowed.
	Institutional bool
}
