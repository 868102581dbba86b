package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDContextRoundTrip(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), 42)

	id, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestUserIDFromContextMissing(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	// a bare string key must not satisfy the typed lookup
	ctx := context.WithValue(context.Background(), "user_id", int64(42)) //nolint:staticcheck
	_, ok = UserIDFromContext(ctx)
	assert.False(t, ok)
}
