package guard

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbmoura/sysportal/internal/client/models"
)

type fakeSessions struct {
	current    models.Session
	resolved   models.Session
	resolveErr error

	resolveCalls int
}

func (f *fakeSessions) Current() models.Session { return f.current }

func (f *fakeSessions) Resolve(ctx context.Context) (models.Session, error) {
	f.resolveCalls++
	f.current = f.resolved
	return f.resolved, f.resolveErr
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		status models.SessionStatus
		want   Decision
	}{
		{models.StatusUnresolved, DecisionLoading},
		{models.StatusAuthenticating, DecisionLoading},
		{models.StatusUnauthenticated, DecisionRedirect},
		{models.StatusAuthenticated, DecisionRender},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			require.Equal(t, tt.want, Evaluate(models.Session{Status: tt.status}))
		})
	}
}

func TestProtect_RendersWhenAuthenticated(t *testing.T) {
	var out bytes.Buffer
	sessions := &fakeSessions{current: models.Session{
		Status:   models.StatusAuthenticated,
		Token:    "tok",
		Identity: models.Identity{Email: "user@example.com"},
	}}

	var rendered *models.Session
	g := New(sessions, &out, func() { t.Fatal("must not redirect") })
	err := g.Protect(context.Background(), func(s models.Session) error {
		rendered = &s
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, rendered)
	require.Equal(t, "user@example.com", rendered.Identity.Email)
	require.Empty(t, out.String(), "no placeholder for an already resolved session")
	require.Zero(t, sessions.resolveCalls, "resolved sessions are not re-checked")
}

func TestProtect_RedirectsWhenUnauthenticated(t *testing.T) {
	var out bytes.Buffer
	sessions := &fakeSessions{current: models.Session{Status: models.StatusUnauthenticated}}

	redirected := false
	g := New(sessions, &out, func() { redirected = true })
	err := g.Protect(context.Background(), func(models.Session) error {
		t.Fatal("protected content must not render")
		return nil
	})
	require.NoError(t, err)
	require.True(t, redirected)
}

func TestProtect_ResolvesUnresolvedFirst(t *testing.T) {
	var out bytes.Buffer
	sessions := &fakeSessions{
		current: models.Session{Status: models.StatusUnresolved},
		resolved: models.Session{
			Status:   models.StatusAuthenticated,
			Token:    "tok",
			Identity: models.Identity{Email: "user@example.com"},
		},
	}

	rendered := false
	g := New(sessions, &out, func() { t.Fatal("must not redirect") })
	err := g.Protect(context.Background(), func(models.Session) error {
		rendered = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, rendered)
	require.Equal(t, 1, sessions.resolveCalls)
	require.Contains(t, out.String(), LoadingPlaceholder, "placeholder shown while resolving")
}

func TestProtect_RedirectsAfterEmptyRehydration(t *testing.T) {
	var out bytes.Buffer
	sessions := &fakeSessions{
		current:  models.Session{Status: models.StatusUnresolved},
		resolved: models.Session{Status: models.StatusUnauthenticated},
	}

	redirected := false
	g := New(sessions, &out, func() { redirected = true })
	err := g.Protect(context.Background(), func(models.Session) error {
		t.Fatal("protected content must not render")
		return nil
	})
	require.NoError(t, err)
	require.True(t, redirected)
}

func TestProtect_FailedRehydrationBehavesLikeLoggedOut(t *testing.T) {
	var out bytes.Buffer
	sessions := &fakeSessions{
		current:    models.Session{Status: models.StatusUnresolved},
		resolved:   models.Session{Status: models.StatusUnauthenticated},
		resolveErr: errors.New("storage broken"),
	}

	redirected := false
	g := New(sessions, &out, func() { redirected = true })
	err := g.Protect(context.Background(), func(models.Session) error {
		t.Fatal("protected content must not render")
		return nil
	})
	require.NoError(t, err)
	require.True(t, redirected, "the guard does not distinguish why a session is unresolved")
}

func TestProtect_NeverRendersIntermediateStates(t *testing.T) {
	for _, status := range []models.SessionStatus{models.StatusAuthenticating} {
		var out bytes.Buffer
		sessions := &fakeSessions{current: models.Session{Status: status}}

		g := New(sessions, &out, func() { t.Fatal("no redirect during an in-flight login") })
		err := g.Protect(context.Background(), func(models.Session) error {
			t.Fatalf("protected content rendered in state %s", status)
			return nil
		})
		require.NoError(t, err)
		require.Contains(t, out.String(), LoadingPlaceholder)
	}
}
