package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
	"github.com/sunitahospital/hospital-system/internal/pkg/metrics"
)

type PatientService struct {
	repo     ports.PatientRepository
	composer ports.NotificationComposer
	notifier ports.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPatientService(
	repo ports.PatientRepository,
	composer ports.NotificationComposer,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *PatientService {
	return &PatientService{
		repo:     repo,
		composer: composer,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Book stores a new appointment and queues a confirmation email to the patient.
func (s *PatientService) Book(ctx context.Context, input ports.BookAppointmentInput) (*domain.Patient, error) {
	if strings.TrimSpace(input.PatientName) == "" || strings.TrimSpace(input.PatientEmail) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if input.PaidAmount < 0 {
		return nil, fmt.Errorf("%w: paid amount must not be negative", domain.ErrInvalidRequest)
	}

	now := s.now()
	appointmentAt := input.AppointmentAt
	if appointmentAt.IsZero() {
		appointmentAt = now
	}

	patient := &domain.Patient{
		ID:            uuid.NewString(),
		PatientName:   input.PatientName,
		PatientEmail:  input.PatientEmail,
		ContactNumber: input.ContactNumber,
		DateOfBirth:   input.DateOfBirth,
		Disease:       input.Disease,
		AppointmentAt: appointmentAt.UTC(),
		BookedAt:      now,
		BookedBy:      input.BookedBy,
		Status:        domain.PatientStatusBooked,
		PaidAmount:    input.PaidAmount,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		s.logger.Error().Err(err).Msg("failed to book appointment")
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	metrics.PatientsBookedTotal.Inc()
	s.logger.Info().Str("patient_id", patient.ID).Str("booked_by", patient.BookedBy).Msg("appointment booked")

	n, err := s.composer.AppointmentBooked(patient)
	if err != nil {
		s.logger.Error().Err(err).Str("patient_id", patient.ID).Msg("failed to compose appointment email")
	} else {
		s.notifier.Enqueue(n)
	}

	return patient, nil
}

// Get returns a booking by id.
func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

// List returns every booking.
func (s *PatientService) List(ctx context.Context) ([]*domain.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

// UpdateStatus moves a booking to status. The status is matched
// case-insensitively against the known patient statuses.
func (s *PatientService) UpdateStatus(ctx context.Context, id, status string) (*domain.Patient, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !domain.ValidPatientStatus(status) {
		return nil, fmt.Errorf("%w: unknown patient status %q", domain.ErrInvalidRequest, status)
	}

	p, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update patient status: %w", err)
	}

	s.logger.Info().Str("patient_id", id).Str("status", status).Msg("patient status updated")
	return p, nil
}

// UpdateDescription replaces the description notes of a booking. An empty
// details string clears them.
func (s *PatientService) UpdateDescription(ctx context.Context, id, details string) (*domain.Patient, error) {
	p, err := s.repo.UpdateDescription(ctx, id, strings.TrimSpace(details))
	if err != nil {
		return nil, fmt.Errorf("update patient description: %w", err)
	}

	s.logger.Info().Str("patient_id", id).Msg("patient description updated")
	return p, nil
}

// PaidAmountMetrics summarises payments over all bookings. The average is
// taken over bookings that carry a payment and is zero when there are none.
func (s *PatientService) PaidAmountMetrics(ctx context.Context) (*domain.PaymentSummary, error) {
	totals, err := s.repo.PaymentTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("paid amount metrics: %w", err)
	}

	summary := &domain.PaymentSummary{
		TotalPaidAmount: totals.TotalPaid,
		Profit:          totals.TotalPaid - totals.CancelledPaid,
		Loss:            totals.CancelledPaid,
	}
	if totals.PaidCount > 0 {
		summary.AveragePaidAmount = float64(totals.TotalPaid) / float64(totals.PaidCount)
	}

	s.logger.Info().
		Int64("total_paid", summary.TotalPaidAmount).
		Int64("profit", summary.Profit).
		Int64("loss", summary.Loss).
		Float64("average_paid", summary.AveragePaidAmount).
		Msg("paid amount metrics calculated")

	return summary, nil
}
