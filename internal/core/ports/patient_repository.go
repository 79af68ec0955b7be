package ports

import (
	"context"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// PatientRepository defines persistence operations for patient bookings.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) error
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context) ([]*domain.Patient, error)
	// UpdateStatus and UpdateDescription return the updated booking, or
	// domain.ErrPatientNotFound.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Patient, error)
	UpdateDescription(ctx context.Context, id, details string) (*domain.Patient, error)
	PaymentTotals(ctx context.Context) (PaymentTotals, error)
}

// PaymentTotals are the raw sums behind domain.PaymentSummary.
type PaymentTotals struct {
	TotalPaid int64
	// CancelledPaid is the part of TotalPaid paid for cancelled bookings.
	CancelledPaid int64
	// PaidCount counts bookings with a positive paid amount.
	PaidCount int64
}
