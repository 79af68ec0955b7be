package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

func welcomeFor(user string) domain.Notification {
	return domain.Notification{To: user + "@x.com", Kind: "welcome", DedupKey: "welcome:" + user}
}

func TestNotificationService_DeliversOnce(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewNotificationService(mailer, newStubGuard(), nopLogger())

	require.NoError(t, svc.Deliver(context.Background(), welcomeFor("alice")))
	require.NoError(t, svc.Deliver(context.Background(), welcomeFor("alice")))
	require.NoError(t, svc.Deliver(context.Background(), welcomeFor("bob")))

	assert.Len(t, mailer.sent, 2)
}

func TestNotificationService_NoDedupKeyAlwaysSends(t *testing.T) {
	mailer := &stubMailer{}
	guard := newStubGuard()
	svc := NewNotificationService(mailer, guard, nopLogger())

	n := domain.Notification{To: "a@x.com", Kind: "welcome"}
	require.NoError(t, svc.Deliver(context.Background(), n))
	require.NoError(t, svc.Deliver(context.Background(), n))

	assert.Len(t, mailer.sent, 2)
	assert.Empty(t, guard.claimed)
}

func TestNotificationService_SendFailureReleasesClaim(t *testing.T) {
	mailer := &stubMailer{err: errStoreDown}
	guard := newStubGuard()
	svc := NewNotificationService(mailer, guard, nopLogger())

	err := svc.Deliver(context.Background(), welcomeFor("alice"))

	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, []string{"welcome:alice"}, guard.released)

	mailer.err = nil
	require.NoError(t, svc.Deliver(context.Background(), welcomeFor("alice")))
	assert.Len(t, mailer.sent, 1)
}

func TestNotificationService_GuardFailureStillSends(t *testing.T) {
	mailer := &stubMailer{}
	guard := newStubGuard()
	guard.claimErr = errStoreDown
	svc := NewNotificationService(mailer, guard, nopLogger())

	require.NoError(t, svc.Deliver(context.Background(), welcomeFor("alice")))
	assert.Len(t, mailer.sent, 1)
}
