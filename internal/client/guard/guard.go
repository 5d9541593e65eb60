// Package guard gates protected views on the session state. The decision
// is a pure function of the session snapshot: intermediate states render a
// loading placeholder, an unauthenticated session redirects to the login
// entry point, and only an authenticated one renders protected content.
package guard

import (
	"context"
	"fmt"
	"io"

	"github.com/rbmoura/sysportal/internal/client/models"
)

// LoadingPlaceholder is what the user sees while the session is still
// being resolved. Deterministic so tests can assert on it.
const LoadingPlaceholder = "Checking session..."

// Decision is the guard's verdict for a given session snapshot.
type Decision int

const (
	// DecisionLoading: status is Unresolved or Authenticating; show the
	// placeholder, do not redirect yet.
	DecisionLoading Decision = iota
	// DecisionRedirect: status is Unauthenticated; send the user to the
	// login entry point, render nothing.
	DecisionRedirect
	// DecisionRender: status is Authenticated; render the protected
	// content.
	DecisionRender
)

// Evaluate maps a session snapshot to a guard decision.
func Evaluate(s models.Session) Decision {
	switch s.Status {
	case models.StatusAuthenticated:
		return DecisionRender
	case models.StatusUnauthenticated:
		return DecisionRedirect
	default:
		return DecisionLoading
	}
}

// SessionSource is the slice of the session manager the guard consumes.
type SessionSource interface {
	Current() models.Session
	Resolve(ctx context.Context) (models.Session, error)
}

// Guard enforces the decision around a protected render function.
type Guard struct {
	sessions SessionSource
	out      io.Writer
	redirect func()
}

// New builds a guard. redirect is invoked when protected content is
// requested without an authenticated session; it is a one-way navigation,
// the originally requested view is not preserved.
func New(sessions SessionSource, out io.Writer, redirect func()) *Guard {
	return &Guard{sessions: sessions, out: out, redirect: redirect}
}

// Protect runs render only when the session is authenticated. An
// unresolved session triggers rehydration first, behind the loading
// placeholder; the guard does not care why a session is unresolved, a
// failed rehydration behaves exactly like "never logged in".
func (g *Guard) Protect(ctx context.Context, render func(models.Session) error) error {
	s := g.sessions.Current()
	if s.Status == models.StatusUnresolved {
		fmt.Fprintln(g.out, LoadingPlaceholder)
		s, _ = g.sessions.Resolve(ctx)
	}

	switch Evaluate(s) {
	case DecisionRender:
		return render(s)
	case DecisionRedirect:
		if g.redirect != nil {
			g.redirect()
		}
		return nil
	default:
		fmt.Fprintln(g.out, LoadingPlaceholder)
		return nil
	}
}
