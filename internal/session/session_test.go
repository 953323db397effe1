package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/vacation-planner/internal/session"
	"github.com/pkordes/vacation-planner/testutil"
)

// newTestStore starts an in-process Redis and returns a store backed by it.
func newTestStore(t *testing.T, ttl time.Duration) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	rdb, mr := testutil.NewRedis(t)
	return session.NewRedisStore(rdb, ttl), mr
}

func TestRedisStore_SaveLoad(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess, err := store.New()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.Authenticated())

	sess.UserID = uuid.New()
	sess.AddFlash("welcome back")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Load(ctx, sess.ID)

	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.True(t, got.Authenticated())
	assert.Equal(t, []string{"welcome back"}, got.PopFlash())
	assert.Empty(t, got.Flash, "PopFlash should clear the queue")
}

func TestRedisStore_Load_Unknown(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Load(context.Background(), "does-not-exist")

	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Load_Expired(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.New()
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Load_SlidesExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.New()
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(45 * time.Second)
	_, err = store.Load(ctx, sess.ID)
	require.NoError(t, err)

	mr.FastForward(45 * time.Second)
	_, err = store.Load(ctx, sess.ID)
	assert.NoError(t, err, "load should have pushed the expiry forward")
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess, err := store.New()
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, sess.ID), "deleting twice is not an error")
}

func TestRedisStore_Rotate(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess, err := store.New()
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))
	oldID := sess.ID

	sess.UserID = uuid.New()
	require.NoError(t, store.Rotate(ctx, sess))

	assert.NotEqual(t, oldID, sess.ID)
	_, err = store.Load(ctx, oldID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	got, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestFromContext(t *testing.T) {
	assert.Nil(t, session.FromContext(context.Background()))

	sess := &session.Session{ID: "abc"}
	ctx := session.WithContext(context.Background(), sess)

	assert.Same(t, sess, session.FromContext(ctx))
}
