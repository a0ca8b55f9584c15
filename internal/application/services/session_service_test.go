package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_NewSearchCancelsPrevious(t *testing.T) {
	presenter := new(mockPresenter)
	presenter.On("Reset", mock.Anything).Return(nil)

	svc := NewSessionService(presenter)

	ctx1, gen1 := svc.Begin(context.Background(), "session-1")
	ctx2, gen2 := svc.Begin(context.Background(), "session-1")

	assert.Greater(t, gen2, gen1)
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	require.NoError(t, ctx2.Err())

	assert.False(t, svc.IsCurrent("session-1", gen1))
	assert.True(t, svc.IsCurrent("session-1", gen2))

	presenter.AssertNumberOfCalls(t, "Reset", 2)
}

func TestSessionService_SessionsAreIndependent(t *testing.T) {
	svc := NewSessionService(nil)

	ctxA, genA := svc.Begin(context.Background(), "session-a")
	_, genB := svc.Begin(context.Background(), "session-b")

	require.NoError(t, ctxA.Err())
	assert.True(t, svc.IsCurrent("session-a", genA))
	assert.True(t, svc.IsCurrent("session-b", genB))
}

func TestSessionService_EndReleasesOnlyCurrentGeneration(t *testing.T) {
	svc := NewSessionService(nil)

	_, gen1 := svc.Begin(context.Background(), "session-1")
	ctx2, gen2 := svc.Begin(context.Background(), "session-1")

	// Ending a superseded generation must not touch the current search
	svc.End("session-1", gen1)
	require.NoError(t, ctx2.Err())

	svc.End("session-1", gen2)
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
	assert.True(t, svc.IsCurrent("session-1", gen2))
}

func TestSessionService_UnknownSessionIsNotCurrent(t *testing.T) {
	svc := NewSessionService(nil)
	assert.False(t, svc.IsCurrent("missing", 1))
}
