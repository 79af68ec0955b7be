package ports

import (
	"context"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// Mailer delivers a single notification.
type Mailer interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Notifier accepts notifications for asynchronous delivery.
type Notifier interface {
	Enqueue(n domain.Notification)
}

// NotificationService delivers a dequeued notification.
type NotificationService interface {
	Deliver(ctx context.Context, n domain.Notification) error
}

// NotificationComposer renders the HTML emails the system sends.
type NotificationComposer interface {
	Welcome(user *domain.User) (domain.Notification, error)
	AppointmentBooked(p *domain.Patient) (domain.Notification, error)
}
