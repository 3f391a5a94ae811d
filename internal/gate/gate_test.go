package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndConsumeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	g := NewMemory()

	require.NoError(t, g.MarkPassed(ctx, "sess-1", StepCheckout))

	ok, err := g.CheckAndConsume(ctx, "sess-1", StepCheckout)
	require.NoError(t, err)
	assert.True(t, ok)

	// Consuming cleared the flag; a replayed check fails.
	ok, err = g.CheckAndConsume(ctx, "sess-1", StepCheckout)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnmarkedStepFails(t *testing.T) {
	g := NewMemory()
	ok, err := g.CheckAndConsume(context.Background(), "sess-1", StepTicket)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStepsAreIndependent(t *testing.T) {
	ctx := context.Background()
	g := NewMemory()

	require.NoError(t, g.MarkPassed(ctx, "sess-1", StepCheckout))

	ok, _ := g.CheckAndConsume(ctx, "sess-1", StepTicket)
	assert.False(t, ok)

	ok, _ = g.CheckAndConsume(ctx, "sess-1", StepCheckout)
	assert.True(t, ok)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	g := NewMemory()

	require.NoError(t, g.MarkPassed(ctx, "sess-1", StepCheckout))

	ok, _ := g.CheckAndConsume(ctx, "sess-2", StepCheckout)
	assert.False(t, ok)

	ok, _ = g.CheckAndConsume(ctx, "sess-1", StepCheckout)
	assert.True(t, ok)
}
