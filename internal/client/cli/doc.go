// Package cli implements the interactive portal client: a read-eval-print
// loop over the session manager and the systems catalog. Commands touching
// protected content run through the route guard, so nothing renders before
// the session is resolved and an expired login falls back to the login
// prompt.
package cli
