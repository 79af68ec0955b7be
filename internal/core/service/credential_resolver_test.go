package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

func TestCredentialResolver_UsernameTakesPriority(t *testing.T) {
	// bob's email equals alice's username; the username match must win.
	alice := &domain.User{UserName: "alice", Email: "alice@x.com"}
	bob := &domain.User{UserName: "bob", Email: "alice"}
	repo := newStubUserRepo(alice, bob)

	got, err := NewCredentialResolver(repo, nopLogger()).Resolve(context.Background(), "alice")

	require.NoError(t, err)
	assert.Same(t, alice, got)
	assert.Equal(t, 1, repo.keyCalls)
	assert.Zero(t, repo.emailCalls)
	assert.Zero(t, repo.contactCalls)
}

func TestCredentialResolver_EmailIsCaseInsensitive(t *testing.T) {
	alice := &domain.User{UserName: "alice", Email: "a@b.com"}
	resolver := NewCredentialResolver(newStubUserRepo(alice), nopLogger())

	for _, id := range []string{"A@B.com", "a@b.com", "A@B.COM"} {
		got, err := resolver.Resolve(context.Background(), id)
		require.NoError(t, err, id)
		assert.Same(t, alice, got, id)
	}
}

func TestCredentialResolver_ContactNumber(t *testing.T) {
	alice := &domain.User{UserName: "alice", ContactNumber: 9998887777}
	repo := newStubUserRepo(alice)

	got, err := NewCredentialResolver(repo, nopLogger()).Resolve(context.Background(), "9998887777")

	require.NoError(t, err)
	assert.Same(t, alice, got)
	assert.Equal(t, 1, repo.contactCalls)
}

func TestCredentialResolver_NonNumericSkipsContactPath(t *testing.T) {
	repo := newStubUserRepo(&domain.User{UserName: "alice", ContactNumber: 1})

	for _, id := range []string{"nobody", "12ab", "99999999999999999999"} {
		got, err := NewCredentialResolver(repo, nopLogger()).Resolve(context.Background(), id)
		require.NoError(t, err, id)
		assert.Nil(t, got, id)
	}
	assert.Zero(t, repo.contactCalls)
}

func TestCredentialResolver_MissIsNotAnError(t *testing.T) {
	repo := newStubUserRepo()

	got, err := NewCredentialResolver(repo, nopLogger()).Resolve(context.Background(), "12345")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, repo.keyCalls)
	assert.Equal(t, 1, repo.emailCalls)
	assert.Equal(t, 1, repo.contactCalls)
}

func TestCredentialResolver_LookupErrorsPropagate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *stubUserRepo)
	}{
		{name: "username", setup: func(r *stubUserRepo) { r.keyErr = errStoreDown }},
		{name: "email", setup: func(r *stubUserRepo) { r.emailErr = errStoreDown }},
		{name: "contact number", setup: func(r *stubUserRepo) { r.contactErr = errStoreDown }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubUserRepo()
			tt.setup(repo)

			got, err := NewCredentialResolver(repo, nopLogger()).Resolve(context.Background(), "42")

			assert.Nil(t, got)
			assert.ErrorIs(t, err, errStoreDown)
		})
	}
}
