// Package session manages the login lifecycle and the two storage
// scopes that hold session identity: a durable postgres-backed scope
// selected by "remember me", and a process-lived in-memory scope for
// everything else. Restoring a session checks both.
package session

// Identity is everything the dashboard keeps about a signed-in user.
// Token is the backend-issued bearer token, opaque to this service.
type Identity struct {
	Token  string
	Email  string
	Name   string
	RoleID int64
	UserID int64
}

// State tracks the login lifecycle. Token presence is what the route
// gate actually checks; State exists so the handler flow is explicit
// about which transitions are legal.
type State int

const (
	LoggedOut State = iota
	LoggingIn
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggingIn:
		return "logging_in"
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}
