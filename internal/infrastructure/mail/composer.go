// Package mail renders and delivers the hospital's outbound emails.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

const (
	KindWelcome     = "welcome"
	KindAppointment = "appointment"

	welcomeSubject     = "Account Created"
	appointmentSubject = "Patient Appointment Booked"
)

const layout = `<html>
<head>
<style>
body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
.container { width: 100%; max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px; }
.header { background-color: #4CAF50; padding: 10px 0; color: white; text-align: center; border-radius: 8px 8px 0 0; }
.content { padding: 25px; }
.footer { text-align: center; font-size: 12px; color: #777777; margin-top: 20px; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>Welcome to {{.Hospital}}!</h1></div>
<div class="content">{{template "content" .}}</div>
<div class="footer"><p>Best regards,<br>The {{.Hospital}} Team</p></div>
</div>
</body>
</html>`

const welcomeContent = `{{define "content"}}
<p>Hello {{.User.UserName}},</p>
<p>Your account has been successfully created.</p>
<p><strong>Account Details:</strong></p>
<p>- Address: {{.User.Address}}</p>
<p>- Email: {{.User.Email}}</p>
<p>If you have any questions or need assistance, feel free to contact our support team.</p>
{{end}}`

const appointmentContent = `{{define "content"}}
<p>Hello {{.Patient.PatientName}},</p>
<p>Your appointment has been successfully booked.</p>
<p><strong>Appointment Details:</strong></p>
<p>- Appointment: {{.When}}</p>
<p>- Reference: {{.Patient.ID}}</p>
<p>If you have any questions or need to reschedule, please contact us.</p>
{{end}}`

// Composer renders notifications from HTML templates.
type Composer struct {
	hospital    string
	welcome     *template.Template
	appointment *template.Template
}

// NewComposer parses the templates. hospital is shown in the header and footer.
func NewComposer(hospital string) (*Composer, error) {
	welcome, err := template.New("welcome").Parse(layout)
	if err == nil {
		_, err = welcome.Parse(welcomeContent)
	}
	if err != nil {
		return nil, fmt.Errorf("parse welcome template: %w", err)
	}

	appointment, err := template.New("appointment").Parse(layout)
	if err == nil {
		_, err = appointment.Parse(appointmentContent)
	}
	if err != nil {
		return nil, fmt.Errorf("parse appointment template: %w", err)
	}

	return &Composer{hospital: hospital, welcome: welcome, appointment: appointment}, nil
}

// Welcome renders the account-created email. One welcome is sent per username.
func (c *Composer) Welcome(user *domain.User) (domain.Notification, error) {
	body, err := render(c.welcome, map[string]any{"Hospital": c.hospital, "User": user})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("compose welcome: %w", err)
	}
	return domain.Notification{
		To:       user.Email,
		Subject:  welcomeSubject,
		HTMLBody: body,
		DedupKey: KindWelcome + ":" + user.UserName,
		Kind:     KindWelcome,
	}, nil
}

// AppointmentBooked renders the booking confirmation. One is sent per booking.
func (c *Composer) AppointmentBooked(p *domain.Patient) (domain.Notification, error) {
	body, err := render(c.appointment, map[string]any{
		"Hospital": c.hospital,
		"Patient":  p,
		"When":     p.AppointmentAt.Format(time.RFC1123),
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("compose appointment: %w", err)
	}
	return domain.Notification{
		To:       p.PatientEmail,
		Subject:  appointmentSubject,
		HTMLBody: body,
		DedupKey: KindAppointment + ":" + p.ID,
		Kind:     KindAppointment,
	}, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
