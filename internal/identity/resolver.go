// Package identity maps session tokens to user ids. Token issuance lives in
// a separate service; this side only resolves what it is handed.
package identity

import "context"

// Resolver turns an opaque session token into a user id. An unknown or
// expired token resolves to "" with a nil error; errors are reserved for
// backend failures.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}
