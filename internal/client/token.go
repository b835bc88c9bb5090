package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// TokenProvider supplies the bearer token for each request. An empty token
// sends the request without an Authorization header.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type staticTokenProvider struct {
	token string
}

func NewStaticTokenProvider(token string) TokenProvider {
	return staticTokenProvider{token: token}
}

func (p staticTokenProvider) Token(context.Context) (string, error) {
	return p.token, nil
}

type tokenKey struct{}

// WithToken attaches a caller's token to ctx, e.g. forwarded from an
// incoming request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Principal returns a stable digest of the token attached with WithToken, or
// an empty string when the request carries none.
func Principal(ctx context.Context) string {
	token, ok := ctx.Value(tokenKey{}).(string)
	if !ok || token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// contextTokenProvider prefers a token carried by the context and falls back
// to the wrapped provider.
type contextTokenProvider struct {
	next TokenProvider
}

func NewContextTokenProvider(next TokenProvider) TokenProvider {
	return contextTokenProvider{next: next}
}

func (p contextTokenProvider) Token(ctx context.Context) (string, error) {
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		return token, nil
	}
	if p.next == nil {
		return "", nil
	}
	return p.next.Token(ctx)
}
