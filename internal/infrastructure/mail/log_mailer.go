package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// LogMailer writes notifications to the log instead of sending them. It is
// used when no SMTP host is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send implements ports.Mailer.
func (m *LogMailer) Send(_ context.Context, n domain.Notification) error {
	m.log.Info().
		Str("to", n.To).
		Str("subject", n.Subject).
		Str("kind", n.Kind).
		Int("body_bytes", len(n.HTMLBody)).
		Msg("mail not sent, no SMTP host configured")
	return nil
}
