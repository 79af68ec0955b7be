package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

// PatientHandler handles appointment bookings.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

type bookAppointmentRequest struct {
	PatientName   string     `json:"patientName" validate:"required"`
	PatientEmail  string     `json:"patientEmail" validate:"required,email"`
	ContactNumber int64      `json:"contactNumber" validate:"omitempty,gt=0"`
	DateOfBirth   string     `json:"dateOfBirth"`
	Disease       string     `json:"disease"`
	AppointmentAt *time.Time `json:"appointmentAt"`
	PaidAmount    int64      `json:"paidAmount" validate:"gte=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateDescriptionRequest struct {
	DescriptionDetails string `json:"descriptionDetails" validate:"max=2000"`
}

// Book stores an appointment for the authenticated caller.
//
// @Summary      Book an appointment
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Patient
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /patients [post]
func (h *PatientHandler) Book(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.BookAppointmentInput{
		PatientName:   req.PatientName,
		PatientEmail:  req.PatientEmail,
		ContactNumber: req.ContactNumber,
		DateOfBirth:   req.DateOfBirth,
		Disease:       req.Disease,
		PaidAmount:    req.PaidAmount,
		BookedBy:      principal.UserName,
	}
	if req.AppointmentAt != nil {
		input.AppointmentAt = *req.AppointmentAt
	}

	patient, err := h.service.Book(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, patient)
}

// Get returns a booking by id. Admins may read any booking, others only the
// ones they booked.
//
// @Summary      Get an appointment
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Patient
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	patient, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if patient.BookedBy != principal.UserName && !isAdmin(principal) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, patient)
}

// List returns every booking, most recent appointment first.
//
// @Summary      List appointments
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Patient
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []*domain.Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

// UpdateStatus sets the status of a booking.
//
// @Summary      Update appointment status
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Booking id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Patient
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /patients/{id}/status [patch]
func (h *PatientHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patient, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// UpdateDescription replaces the description notes of a booking.
//
// @Summary      Update appointment description
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Booking id"
// @Param        body  body      updateDescriptionRequest  true  "Description notes"
// @Success      200   {object}  domain.Patient
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /patients/{id}/description [patch]
func (h *PatientHandler) UpdateDescription(c echo.Context) error {
	var req updateDescriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patient, err := h.service.UpdateDescription(c.Request().Context(), c.Param("id"), req.DescriptionDetails)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// PaymentMetrics returns the paid-amount summary over all bookings.
//
// @Summary      Paid amount metrics
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PaymentSummary
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /patients/metrics [get]
func (h *PatientHandler) PaymentMetrics(c echo.Context) error {
	summary, err := h.service.PaidAmountMetrics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
