package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextTokenProviderPrefersForwardedToken(t *testing.T) {
	tokens := NewContextTokenProvider(NewStaticTokenProvider("service-token"))

	token, err := tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "service-token", token)

	token, err = tokens.Token(WithToken(context.Background(), "user-token"))
	require.NoError(t, err)
	assert.Equal(t, "user-token", token)
}

func TestPrincipal(t *testing.T) {
	assert.Empty(t, Principal(context.Background()))
	assert.Empty(t, Principal(WithToken(context.Background(), "")))

	admin := Principal(WithToken(context.Background(), "admin-token"))
	user := Principal(WithToken(context.Background(), "user-token"))
	assert.Len(t, admin, 32)
	assert.NotEqual(t, admin, user)
	assert.Equal(t, admin, Principal(WithToken(context.Background(), "admin-token")))
	assert.NotContains(t, admin, "admin")
}
