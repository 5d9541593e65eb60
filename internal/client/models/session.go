// Package models defines the value types shared by the portal client: the
// session entity owned by the session manager and the system records served
// by the backend catalog.
package models

// SessionStatus enumerates the authentication states of the running client.
// Exactly one holds at any time; transitions happen only inside the session
// manager.
type SessionStatus string

const (
	// StatusUnresolved means the persisted credential has not been
	// looked up yet.
	StatusUnresolved SessionStatus = "unresolved"
	// StatusAuthenticating means a login call is in flight.
	StatusAuthenticating SessionStatus = "authenticating"
	// StatusAuthenticated means a credential and identity are present.
	StatusAuthenticated SessionStatus = "authenticated"
	// StatusUnauthenticated means no valid credential is held.
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// Identity is the user-identifying data returned by the backend on login.
type Identity struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Session is an immutable snapshot of the client's authentication state.
// Token and Identity are meaningful only while Status is
// StatusAuthenticated.
type Session struct {
	Status   SessionStatus
	Token    string
	Identity Identity
}

// Authenticated reports whether the snapshot carries a usable credential.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}
