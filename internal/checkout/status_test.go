package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, CanTransitionTo(StatusPending, StatusSubmitting))
	assert.True(t, CanTransitionTo(StatusSubmitting, StatusCompleted))
	assert.True(t, CanTransitionTo(StatusSubmitting, StatusFailed))
	assert.True(t, CanTransitionTo(StatusFailed, StatusSubmitting), "failure must allow a user-initiated retry")

	assert.False(t, CanTransitionTo(StatusCompleted, StatusSubmitting))
	assert.False(t, CanTransitionTo(StatusPending, StatusCompleted))
	assert.False(t, CanTransitionTo(StatusPending, StatusFailed))
	assert.False(t, CanTransitionTo(StatusFailed, StatusCompleted))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusFailed.IsTerminal(), "failed checkouts stay retryable")
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusSubmitting.IsTerminal())
}
