package memory

import (
	"context"
	"testing"

	"github.com/mapflow-dev/mapflow/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAbsentKey(t *testing.T) {
	s := New()
	t.Cleanup(func() { _ = s.Close() })

	value, ok, err := s.Get(context.Background(), "sess-1", session.KeyCurrentStep)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSetGetRoundTrip(t *testing.T) {
	s := New()
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sess-1", session.KeyCurrentStep, "2"))

	value, ok, err := s.Get(ctx, "sess-1", session.KeyCurrentStep)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", value)

	// A different session does not see the value.
	_, ok, err = s.Get(ctx, "sess-2", session.KeyCurrentStep)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	s := New()
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sess-1", session.KeyCurrentStep, "3"))
	require.NoError(t, s.Delete(ctx, "sess-1", session.KeyCurrentStep))

	_, ok, err := s.Get(ctx, "sess-1", session.KeyCurrentStep)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting from an unknown session is a no-op.
	assert.NoError(t, s.Delete(ctx, "sess-404", session.KeyCurrentStep))
}

func TestSessions(t *testing.T) {
	s := New()
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "bravo", session.KeyCurrentStep, "1"))
	require.NoError(t, s.Set(ctx, "alpha", session.KeyCurrentStep, "0"))
	require.NoError(t, s.Set(ctx, "alpha", "uploaded_file", "ledger.csv"))

	infos, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].ID)
	assert.Equal(t, 2, infos[0].Keys)
	assert.Equal(t, "bravo", infos[1].ID)
	assert.False(t, infos[0].UpdatedAt.IsZero())
}

func TestClosedStore(t *testing.T) {
	s := New()
	require.NoError(t, s.Close())
	ctx := context.Background()

	_, _, err := s.Get(ctx, "sess-1", session.KeyCurrentStep)
	assert.ErrorIs(t, err, session.ErrStoreClosed)

	assert.ErrorIs(t, s.Set(ctx, "sess-1", session.KeyCurrentStep, "1"), session.ErrStoreClosed)
	assert.ErrorIs(t, s.Delete(ctx, "sess-1", session.KeyCurrentStep), session.ErrStoreClosed)

	_, err = s.Sessions(ctx)
	assert.ErrorIs(t, err, session.ErrStoreClosed)
}

func TestContextCancellation(t *testing.T) {
	s := New()
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Get(ctx, "sess-1", session.KeyCurrentStep)
	assert.ErrorIs(t, err, context.Canceled)
}
