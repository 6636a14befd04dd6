// Package verify implements the optional post-ranking verification and
// enrichment hooks: a plain HTTPS call to a third-party provider, guarded
// by a bounded retry/backoff policy, whose result is attached to a
// prediction without ever failing the surrounding call.
package verify

import "context"

// Result is what a verification or enrichment provider reported about one
// email address. Fields a provider didn't return keep their zero value;
// Raw always holds the full response body for callers that need more than
// the three normalised fields.
type Result struct {
	Status      string
	Score       int
	Deliverable bool
	Raw         string
}

// Hook is the capability the engine calls after ranking: look up
// whatever a provider knows about one candidate email.
type Hook interface {
	Call(ctx context.Context, email string) (*Result, error)
}
