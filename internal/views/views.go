// Package views holds the view models behind each page. They own the
// interaction contracts: load/submit state machines, last-response-wins
// ordering, client-side review filtering, and optimistic local mutations
// after deletes. Rendering is someone else's job; callers take a snapshot
// of a view's state and draw it.
//
// Every view is safe for concurrent use. Completions are applied under the
// view's lock and carry a generation token, so a stale response can never
// overwrite the result of a newer user action, and nothing mutates state
// after Close.
package views

import (
	"errors"

	"bookshelf/internal/clients"
)

// Phase describes where a view is in its load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
	// PhaseNotFound is terminal: the routed-to book does not exist and
	// there is no retry control.
	PhaseNotFound
	// PhaseAccessDenied is rendered when a non-admin reaches an
	// admin-only view.
	PhaseAccessDenied
)

// ErrNotPermitted is returned when a session without the admin role
// attempts an admin-only action.
var ErrNotPermitted = errors.New("action requires the admin role")

// failureMessage builds the user-visible message for a failed remote call,
// preferring the server-provided reason.
func failureMessage(prefix string, err error) string {
	return prefix + clients.Reason(err)
}
