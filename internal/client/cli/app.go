package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rbmoura/sysportal/internal/client/api"
	"github.com/rbmoura/sysportal/internal/client/config"
	"github.com/rbmoura/sysportal/internal/client/credstore"
	"github.com/rbmoura/sysportal/internal/client/guard"
	"github.com/rbmoura/sysportal/internal/client/models"
	"github.com/rbmoura/sysportal/internal/client/session"
	"github.com/rbmoura/sysportal/internal/client/systems"
	"github.com/rbmoura/sysportal/internal/filex"
	"github.com/rbmoura/sysportal/internal/logging"

	_ "modernc.org/sqlite"
)

const appName = "sysportal"

// sessionManager is the slice of the session manager the CLI drives.
// The real session.Manager satisfies it; tests can provide a stub.
type sessionManager interface {
	Current() models.Session
	Resolve(ctx context.Context) (models.Session, error)
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Register(ctx context.Context, email, password, confirmPassword string) error
	Logout(ctx context.Context) error
	Subscribe(fn session.Listener) func()
}

type App struct {
	config   *config.Config
	log      logging.Logger
	sessions sessionManager
	guard    *guard.Guard
	catalog  *systems.Service
	store    io.Closer
	reader   *bufio.Reader
	out      io.Writer

	// list survives between catalog commands and is dropped on logout,
	// so a confirmed delete stays gone without a refetch.
	list *systems.ListState
}

// NewApp wires the portal client together: credential store, REST client,
// session manager and route guard. The REST client reads the bearer token
// from the session manager at call time, which is why the token source is
// attached only after the manager exists.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	dataDir := cfg.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = filex.EnsureUserDataDir(appName)
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
	}

	store, err := credstore.Open(ctx, dataDir)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}

	client := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout)
	sessions := session.NewManager(store, client)
	client.UseTokenSource(sessions)

	app := &App{
		config:   cfg,
		log:      logging.NewTextLogger(os.Stderr, slog.LevelInfo),
		sessions: sessions,
		catalog:  systems.NewService(client),
		store:    store,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	app.guard = guard.New(sessions, app.out, app.redirectToLogin)
	return app, nil
}

// Run rehydrates the persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	unsubscribe := a.sessions.Subscribe(func(s models.Session) {
		a.log.Info(ctx, "session changed", "status", string(s.Status))
	})
	defer unsubscribe()

	fmt.Fprintln(a.out, "Systems Portal CLI (type 'help' for commands)")

	s, err := a.sessions.Resolve(ctx)
	if err != nil {
		a.log.Warn(ctx, "session rehydration failed", "error", err.Error())
	} else if s.Authenticated() {
		fmt.Fprintf(a.out, "Welcome back, %s\n", s.Identity.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the credential store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().Authenticated()
}

func (a *App) getStatus() string {
	s := a.sessions.Current()
	if s.Authenticated() {
		return fmt.Sprintf("(%s)", s.Identity.Email)
	}
	return ""
}

// redirectToLogin is the guard's navigation target. In a terminal there is
// no page to route to, so the redirect is a hint; the originally requested
// command is not replayed after login.
func (a *App) redirectToLogin() {
	fmt.Fprintln(a.out, "You are not logged in. Use 'login' to authenticate.")
}

// reportError prints a backend failure to the user. A rejected credential
// on a protected call means the stored token is stale: the session is
// dropped so the next command redirects to login instead of failing again.
func (a *App) reportError(ctx context.Context, err error) {
	if api.IsKind(err, api.KindAuthentication) && a.isLoggedIn() {
		a.log.Warn(ctx, "credential rejected by backend, logging out")
		if lerr := a.sessions.Logout(ctx); lerr != nil {
			a.log.Error(ctx, "logout failed", "error", lerr.Error())
		}
		a.list = nil
		fmt.Fprintln(a.out, "Your session has expired, please log in again.")
		return
	}
	fmt.Fprintln(a.out, "Error:", err.Error())
}
