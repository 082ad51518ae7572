// Package sessions holds server-side session state keyed by user id. Entries
// carry a TTL matching the session token lifetime, so an entry that is never
// logged out still dies with its token.
package sessions

import "context"

// Session is the record created at login and consulted by the auth gate.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Store is implemented by the memory and Redis backends. Get reports false
// for a missing or expired entry. A repeated Put for the same user id
// overwrites the previous session.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, userID string) (Session, bool, error)
	Delete(ctx context.Context, userID string) error
}
