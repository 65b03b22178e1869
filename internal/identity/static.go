package identity

import "context"

// Static resolves tokens from a fixed map. Used in tests and local
// development without a session cache.
type Static struct {
	tokens map[string]string
}

func NewStatic(tokens map[string]string) *Static {
	if tokens == nil {
		tokens = make(map[string]string)
	}
	return &Static{tokens: tokens}
}

func (s *Static) Resolve(_ context.Context, token string) (string, error) {
	return s.tokens[token], nil
}
