package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

var errStoreDown = errors.New("store down")

func nopLogger() zerolog.Logger { return zerolog.Nop() }

// stubUserRepo is an in-memory ports.UserRepository that counts lookups.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User

	keyCalls, emailCalls, contactCalls int

	keyErr, emailErr, contactErr, createErr, listErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.UserName] = u
	}
	return r
}

func (r *stubUserRepo) lookups() int { return r.keyCalls + r.emailCalls + r.contactCalls }

func (r *stubUserRepo) GetByKey(_ context.Context, userName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keyCalls++
	if r.keyErr != nil {
		return nil, r.keyErr
	}
	return r.users[userName], nil
}

func (r *stubUserRepo) GetByEmailCI(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emailCalls++
	if r.emailErr != nil {
		return nil, r.emailErr
	}
	for _, u := range r.users {
		if u.Email != "" && strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByContactNumber(_ context.Context, number int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contactCalls++
	if r.contactErr != nil {
		return nil, r.contactErr
	}
	for _, u := range r.users {
		if u.ContactNumber != 0 && u.ContactNumber == number {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.UserName]; ok {
		return domain.ErrUserExists
	}
	r.users[user.UserName] = user
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) remove(userName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userName)
}

// stubVerifier checks plaintext passwords against a map keyed by username.
type stubVerifier struct {
	passwords map[string]string
	disabled  map[string]bool
	err       error
	calls     []string
	onCall    func(userName string)
}

func (v *stubVerifier) Authenticate(_ context.Context, userName, password string) error {
	v.calls = append(v.calls, userName)
	if v.onCall != nil {
		v.onCall(userName)
	}
	if v.err != nil {
		return v.err
	}
	want, ok := v.passwords[userName]
	if !ok || want != password {
		return domain.ErrBadCredentials
	}
	if v.disabled[userName] {
		return domain.ErrAccountDisabled
	}
	return nil
}

type stubIssuer struct {
	token  string
	err    error
	issued []*domain.AuthenticatedPrincipal
}

func (i *stubIssuer) Issue(_ context.Context, p *domain.AuthenticatedPrincipal) (string, error) {
	i.issued = append(i.issued, p)
	if i.err != nil {
		return "", i.err
	}
	return i.token, nil
}

type stubHasher struct {
	err error
}

func (h stubHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

type stubComposer struct {
	err error
}

func (c stubComposer) Welcome(u *domain.User) (domain.Notification, error) {
	if c.err != nil {
		return domain.Notification{}, c.err
	}
	return domain.Notification{To: u.Email, Kind: "welcome", DedupKey: "welcome:" + u.UserName}, nil
}

func (c stubComposer) AppointmentBooked(p *domain.Patient) (domain.Notification, error) {
	if c.err != nil {
		return domain.Notification{}, c.err
	}
	return domain.Notification{To: p.PatientEmail, Kind: "appointment", DedupKey: "appointment:" + p.ID}, nil
}

type stubNotifier struct {
	queued []domain.Notification
}

func (n *stubNotifier) Enqueue(notification domain.Notification) {
	n.queued = append(n.queued, notification)
}

type stubPatientRepo struct {
	patients  map[string]*domain.Patient
	createErr error
	totals    ports.PaymentTotals
	totalsErr error
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[string]*domain.Patient)}
}

func (r *stubPatientRepo) Create(_ context.Context, p *domain.Patient) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.patients[p.ID] = p
	return nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id string) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	return p, nil
}

func (r *stubPatientRepo) List(_ context.Context) ([]*domain.Patient, error) {
	out := make([]*domain.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPatientRepo) UpdateStatus(_ context.Context, id, status string) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	p.Status = status
	return p, nil
}

func (r *stubPatientRepo) UpdateDescription(_ context.Context, id, details string) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	p.DescriptionDetails = details
	return p, nil
}

func (r *stubPatientRepo) PaymentTotals(context.Context) (ports.PaymentTotals, error) {
	return r.totals, r.totalsErr
}

type stubMailer struct {
	sent []domain.Notification
	err  error
}

func (m *stubMailer) Send(_ context.Context, n domain.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, n)
	return nil
}

type stubGuard struct {
	claimed  map[string]bool
	claimErr error
	released []string
}

func newStubGuard() *stubGuard { return &stubGuard{claimed: make(map[string]bool)} }

func (g *stubGuard) Claim(_ context.Context, key string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	if g.claimed[key] {
		return false, nil
	}
	g.claimed[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	g.released = append(g.released, key)
	delete(g.claimed, key)
	return nil
}

func userRole() domain.Role {
	return domain.Role{RoleName: domain.DefaultRoleName, Description: domain.DefaultRoleDescription}
}
