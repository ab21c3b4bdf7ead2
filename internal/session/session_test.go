package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilhamrafi44/ayp/internal/models"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	user := models.User{ID: 1, Name: "Ilham", Email: "ilham@example.com"}

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, store.Save(ctx, "abc123", user))
	sess, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, Session{Token: "abc123", User: user}, *sess)
	assert.Equal(t, "abc123", Token(ctx, store))

	require.NoError(t, store.Clear(ctx))
	sess, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, "", Token(ctx, store))
}

func TestMemoryStore_RejectsHalfPair(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, "", models.User{ID: 1}), ErrInvalidSession)
	assert.ErrorIs(t, store.Save(ctx, "abc", models.User{}), ErrInvalidSession)
}

func TestToken_NilStore(t *testing.T) {
	assert.Equal(t, "", Token(context.Background(), nil))
}

func TestInspect(t *testing.T) {
	now := time.Now()

	t.Run("jwt with expiry", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "1",
			"iat": now.Add(-time.Hour).Unix(),
			"exp": now.Add(90 * time.Minute).Unix(),
		})
		signed, err := tok.SignedString([]byte("whatever"))
		require.NoError(t, err)

		info, ok := Inspect(signed)
		require.True(t, ok)
		assert.Equal(t, "1", info.Subject)
		assert.False(t, info.Expired(now))
		assert.Equal(t, "expires in 1h30m", info.ExpiryLabel(now))
	})

	t.Run("expired jwt", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": now.Add(-time.Minute).Unix(),
		})
		signed, err := tok.SignedString([]byte("whatever"))
		require.NoError(t, err)

		info, ok := Inspect(signed)
		require.True(t, ok)
		assert.True(t, info.Expired(now))
		assert.Equal(t, "token expired", info.ExpiryLabel(now))
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := Inspect("abc123")
		assert.False(t, ok)
	})

	t.Run("no expiry claim", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
		signed, err := tok.SignedString([]byte("whatever"))
		require.NoError(t, err)

		info, ok := Inspect(signed)
		require.True(t, ok)
		assert.False(t, info.Expired(now))
		assert.Equal(t, "", info.ExpiryLabel(now))
	})
}
