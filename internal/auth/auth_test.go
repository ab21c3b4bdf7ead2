package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilhamrafi44/ayp/internal/api"
	"github.com/ilhamrafi44/ayp/internal/apitest"
	"github.com/ilhamrafi44/ayp/internal/session"
)

func newService(t *testing.T) (*Service, *session.MemoryStore) {
	t.Helper()
	srv := apitest.New(t)
	store := session.NewMemoryStore()
	client := api.New(srv.URL, 5*time.Second, store, zerolog.Nop())
	return NewService(client, store, zerolog.Nop()), store
}

func TestLogin_SavesSession(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, Credentials{Email: "ilham@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", sess.Token)
	assert.Equal(t, "Ilham", sess.User.Name)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, sess, *stored)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, Credentials{Email: "ilham@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestValidate(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name string
		in   Credentials
		want string
	}{
		{"ok", Credentials{Email: " ilham@example.com ", Password: "x"}, ""},
		{"missing email", Credentials{Password: "x"}, "email is required"},
		{"bad email", Credentials{Email: "ilham", Password: "x"}, "email must be a valid email"},
		{"missing password", Credentials{Email: "ilham@example.com"}, "password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.in)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestLogout(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, Credentials{Email: "ilham@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}
