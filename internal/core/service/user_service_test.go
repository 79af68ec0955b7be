package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

func TestUserService_Register(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := NewUserService(repo, stubHasher{}, stubComposer{}, notifier, nopLogger())

	user, err := svc.Register(context.Background(), ports.RegisterUserInput{
		UserName:      "alice",
		Password:      "secret",
		Email:         "alice@x.com",
		ContactNumber: 9998887777,
		Address:       "Main St",
	})

	require.NoError(t, err)
	assert.Equal(t, "hashed:secret", user.Password)
	assert.True(t, user.Enabled)
	assert.Equal(t, []domain.Role{userRole()}, user.Roles)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Same(t, user, repo.users["alice"])

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, "alice@x.com", notifier.queued[0].To)
	assert.Equal(t, "welcome:alice", notifier.queued[0].DedupKey)
}

func TestUserService_Register_NoEmailNoWelcome(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewUserService(newStubUserRepo(), stubHasher{}, stubComposer{}, notifier, nopLogger())

	_, err := svc.Register(context.Background(), ports.RegisterUserInput{UserName: "bob", Password: "secret"})

	require.NoError(t, err)
	assert.Empty(t, notifier.queued)
}

func TestUserService_Register_Rejections(t *testing.T) {
	existing := &domain.User{UserName: "alice"}

	tests := []struct {
		name    string
		repo    *stubUserRepo
		hasher  stubHasher
		input   ports.RegisterUserInput
		wantErr error
	}{
		{
			name:    "blank username",
			repo:    newStubUserRepo(),
			input:   ports.RegisterUserInput{UserName: "  ", Password: "secret"},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "blank password",
			repo:    newStubUserRepo(),
			input:   ports.RegisterUserInput{UserName: "bob"},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "duplicate",
			repo:    newStubUserRepo(existing),
			input:   ports.RegisterUserInput{UserName: "alice", Password: "secret", Email: "a@x.com"},
			wantErr: domain.ErrUserExists,
		},
		{
			name:    "hash failure",
			repo:    newStubUserRepo(),
			hasher:  stubHasher{err: errors.New("cost too high")},
			input:   ports.RegisterUserInput{UserName: "bob", Password: "secret"},
			wantErr: errors.New("cost too high"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &stubNotifier{}
			svc := NewUserService(tt.repo, tt.hasher, stubComposer{}, notifier, nopLogger())

			user, err := svc.Register(context.Background(), tt.input)

			assert.Nil(t, user)
			require.Error(t, err)
			if errors.Is(tt.wantErr, domain.ErrInvalidRequest) || errors.Is(tt.wantErr, domain.ErrUserExists) {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
			assert.Empty(t, notifier.queued)
		})
	}
}

func TestUserService_Register_ComposeFailureDoesNotFail(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewUserService(newStubUserRepo(), stubHasher{}, stubComposer{err: errors.New("template")}, notifier, nopLogger())

	user, err := svc.Register(context.Background(), ports.RegisterUserInput{UserName: "bob", Password: "secret", Email: "b@x.com"})

	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.Empty(t, notifier.queued)
}

func TestUserService_Get(t *testing.T) {
	repo := newStubUserRepo(&domain.User{UserName: "alice"})
	svc := NewUserService(repo, stubHasher{}, stubComposer{}, &stubNotifier{}, nopLogger())

	user, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)

	_, err = svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	repo.keyErr = errStoreDown
	_, err = svc.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, errStoreDown)
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo(&domain.User{UserName: "alice"}, &domain.User{UserName: "bob"})
	svc := NewUserService(repo, stubHasher{}, stubComposer{}, &stubNotifier{}, nopLogger())

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	repo.listErr = errStoreDown
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
}
