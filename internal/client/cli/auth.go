package cli

import (
	"context"
	"fmt"

	"github.com/rbmoura/sysportal/internal/client/models"
	"github.com/rbmoura/sysportal/internal/common"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

// Register prompts for an email and a password (twice) and creates a new
// account. Validation failures — empty email, short password, mismatched
// confirmation — are caught by the session manager before any network call.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.sessions.Register(ctx, email, string(password), string(confirm)); err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Registration successful! You can now log in.")
	return nil
}

// Login prompts for credentials and authenticates against the backend. On
// success the credential is already persisted by the session manager, so a
// later run of the client starts logged in.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Already logged in as %s\n", a.sessions.Current().Identity.Email)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	identity, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", identity.Email)
	return nil
}

// Logout drops the in-memory session and the persisted credential. The
// cached catalog list goes with it. A failure to clear the store is logged
// but does not keep the user logged in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		a.log.Warn(ctx, "clearing stored credential failed", "error", err.Error())
	}
	a.list = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI shows the identity attached to the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	return a.guard.Protect(ctx, func(s models.Session) error {
		fmt.Fprintf(a.out, "Logged in as %s\n", s.Identity.Email)
		if s.Identity.Name != "" {
			fmt.Fprintf(a.out, "Name: %s\n", s.Identity.Name)
		}
		if s.Identity.ID != "" {
			fmt.Fprintf(a.out, "ID: %s\n", s.Identity.ID)
		}
		return nil
	})
}
