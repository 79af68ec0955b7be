package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
	"github.com/sunitahospital/hospital-system/internal/pkg/metrics"
)

// DeliveryGuard abstracts the once-only delivery store (Redis).
type DeliveryGuard interface {
	// Claim records key and reports whether this caller is the first to do so.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets key so a later delivery may claim it again.
	Release(ctx context.Context, key string) error
}

type notificationService struct {
	mailer ports.Mailer
	guard  DeliveryGuard
	log    zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(mailer ports.Mailer, guard DeliveryGuard, log zerolog.Logger) ports.NotificationService {
	return &notificationService{
		mailer: mailer,
		guard:  guard,
		log:    log,
	}
}

// Deliver deduplicates and sends a single notification.
func (s *notificationService) Deliver(ctx context.Context, n domain.Notification) error {
	claimed := false

	// 1. Once-only check. A broken guard must not block mail.
	if n.DedupKey != "" {
		first, err := s.guard.Claim(ctx, n.DedupKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("dedup_key", n.DedupKey).Msg("dedup claim failed, sending anyway")
		case !first:
			metrics.NotificationsTotal.WithLabelValues(n.Kind, "duplicate").Inc()
			s.log.Debug().Str("dedup_key", n.DedupKey).Msg("duplicate notification skipped")
			return nil
		default:
			claimed = true
		}
	}

	// 2. Send; on failure release the claim so a retry can go through.
	if err := s.mailer.Send(ctx, n); err != nil {
		metrics.NotificationsTotal.WithLabelValues(n.Kind, "failed").Inc()
		if claimed {
			if relErr := s.guard.Release(ctx, n.DedupKey); relErr != nil {
				s.log.Warn().Err(relErr).Str("dedup_key", n.DedupKey).Msg("failed to release dedup key")
			}
		}
		return fmt.Errorf("deliver notification: %w", err)
	}

	metrics.NotificationsTotal.WithLabelValues(n.Kind, "sent").Inc()
	s.log.Info().
		Str("to", n.To).
		Str("kind", n.Kind).
		Str("subject", n.Subject).
		Msg("notification sent")

	return nil
}
