package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/service"
)

// ---------- Mocks ----------

type mockApplicationRepo struct {
	byEmail   map[string]*domain.Application
	insertErr error
	decideErr error
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{byEmail: make(map[string]*domain.Application)}
}

func (m *mockApplicationRepo) InsertIfAbsent(_ context.Context, app *domain.Application) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
	if _, exists := m.byEmail[app.Email]; exists {
		return false, nil
	}
	app.ID = primitive.NewObjectID()
	app.Status = domain.ApplicationPending
	m.byEmail[app.Email] = app
	return true, nil
}

func (m *mockApplicationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Application, error) {
	for _, app := range m.byEmail {
		if app.ID == id {
			return app, nil
		}
	}
	return nil, nil
}

func (m *mockApplicationRepo) FindByEmail(_ context.Context, email string) (*domain.Application, error) {
	return m.byEmail[email], nil
}

func (m *mockApplicationRepo) List(_ context.Context) ([]domain.Application, error) {
	apps := []domain.Application{}
	for _, app := range m.byEmail {
		apps = append(apps, *app)
	}
	return apps, nil
}

func (m *mockApplicationRepo) Decide(_ context.Context, id primitive.ObjectID, approved bool, acceptDate string) (bool, error) {
	if m.decideErr != nil {
		return false, m.decideErr
	}
	for _, app := range m.byEmail {
		if app.ID == id {
			app.Status = domain.ApplicationChecked
			v := approved
			app.Approved = &v
			if acceptDate != "" {
				app.AcceptDate = acceptDate
			}
			return true, nil
		}
	}
	return false, nil
}

type mockApartmentRepo struct {
	byID   map[primitive.ObjectID]*domain.Apartment
	setErr error
}

func newMockApartmentRepo() *mockApartmentRepo {
	return &mockApartmentRepo{byID: make(map[primitive.ObjectID]*domain.Apartment)}
}

func (m *mockApartmentRepo) Insert(_ context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	a.ID = primitive.NewObjectID()
	m.byID[a.ID] = a
	return a, nil
}

func (m *mockApartmentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Apartment, error) {
	return m.byID[id], nil
}

func (m *mockApartmentRepo) List(_ context.Context) ([]domain.Apartment, error) { return nil, nil }

func (m *mockApartmentRepo) ListByRentRange(_ context.Context, _, _ int64) ([]domain.Apartment, error) {
	return nil, nil
}

func (m *mockApartmentRepo) SetAvailability(_ context.Context, id primitive.ObjectID, available bool) (bool, error) {
	if m.setErr != nil {
		return false, m.setErr
	}
	a, exists := m.byID[id]
	if !exists {
		return false, nil
	}
	a.Available = available
	return true, nil
}

type mockUserRepo struct {
	byEmail   map[string]*domain.User
	updateErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	u.ID = primitive.NewObjectID()
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserRepo) List(_ context.Context, _ *domain.Role) ([]domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, email string, role domain.Role) (bool, error) {
	if m.updateErr != nil {
		return false, m.updateErr
	}
	u, exists := m.byEmail[email]
	if !exists {
		return false, nil
	}
	u.Role = role
	return true, nil
}

type mockPublisher struct {
	subjects []string
}

func (m *mockPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	m.subjects = append(m.subjects, subject)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type mockMailer struct {
	lastTo       string
	lastAccepted bool
	calls        int
}

func (m *mockMailer) SendDecisionEmail(toEmail, _ string, accepted bool) error {
	m.lastTo = toEmail
	m.lastAccepted = accepted
	m.calls++
	return nil
}

// ---------- Fixtures ----------

type fixture struct {
	apps       *mockApplicationRepo
	apartments *mockApartmentRepo
	users      *mockUserRepo
	publisher  *mockPublisher
	mail       *mockMailer
	svc        service.ApplicationService
}

func newFixture() *fixture {
	f := &fixture{
		apps:       newMockApplicationRepo(),
		apartments: newMockApartmentRepo(),
		users:      newMockUserRepo(),
		publisher:  &mockPublisher{},
		mail:       &mockMailer{},
	}
	f.svc = service.NewApplicationService(f.apps, f.apartments, f.users, f.publisher, f.mail)
	return f
}

func (f *fixture) addApartment(t *testing.T) *domain.Apartment {
	t.Helper()
	a, err := f.apartments.Insert(context.Background(), &domain.Apartment{
		Title:     "Loft A1",
		Rent:      1200,
		Available: true,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) addUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.users.Insert(context.Background(), &domain.User{Email: email, Role: role})
	require.NoError(t, err)
	return u
}

// ---------- Submit ----------

func TestSubmitCreatesApplicationAndHoldsApartment(t *testing.T) {
	f := newFixture()
	apt := f.addApartment(t)
	f.addUser(t, "a@x.com", domain.RoleUser)

	result, err := f.svc.Submit(context.Background(), "a@x.com", apt.ID.Hex())
	require.NoError(t, err)
	require.False(t, result.AlreadyApplied)
	require.True(t, result.ApartmentUpdated)
	require.NotNil(t, result.Application)
	require.Equal(t, domain.ApplicationPending, result.Application.Status)
	require.Nil(t, result.Application.Approved)

	require.False(t, apt.Available)
	require.Contains(t, f.publisher.subjects, "application.submitted")
}

func TestSecondSubmitIsNoOp(t *testing.T) {
	f := newFixture()
	first := f.addApartment(t)
	second := f.addApartment(t)
	f.addUser(t, "a@x.com", domain.RoleUser)

	_, err := f.svc.Submit(context.Background(), "a@x.com", first.ID.Hex())
	require.NoError(t, err)

	// Any apartment: the duplicate check is keyed on the applicant only.
	result, err := f.svc.Submit(context.Background(), "a@x.com", second.ID.Hex())
	require.NoError(t, err)
	require.True(t, result.AlreadyApplied)
	require.Equal(t, service.AlreadyAppliedMessage, result.Message)
	require.Nil(t, result.Application)

	require.Len(t, f.apps.byEmail, 1)
	require.True(t, second.Available, "duplicate submit must not mutate any apartment")
}

func TestSubmitRejectsInvalidApartmentID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), "a@x.com", "not-an-id")
	require.ErrorIs(t, err, service.ErrInvalidID)
}

func TestSubmitSurfacesApartmentWriteFailure(t *testing.T) {
	f := newFixture()
	apt := f.addApartment(t)
	f.apartments.setErr = errors.New("write failed")

	result, err := f.svc.Submit(context.Background(), "a@x.com", apt.ID.Hex())
	require.NoError(t, err)
	require.False(t, result.AlreadyApplied)
	require.False(t, result.ApartmentUpdated)
	// No rollback: the application insert stands.
	require.Len(t, f.apps.byEmail, 1)
}

// ---------- Accept / Reject ----------

func TestAcceptPromotesApplicant(t *testing.T) {
	f := newFixture()
	apt := f.addApartment(t)
	f.addUser(t, "a@x.com", domain.RoleUser)

	submitted, err := f.svc.Submit(context.Background(), "a@x.com", apt.ID.Hex())
	require.NoError(t, err)

	result, err := f.svc.Accept(context.Background(), &domain.AcceptReq{
		ID:          submitted.Application.ID.Hex(),
		Email:       "a@x.com",
		ApartmentID: apt.ID.Hex(),
		Date:        "2024-01-01",
	})
	require.NoError(t, err)
	require.True(t, result.ApplicationUpdated)
	require.True(t, result.RoleUpdated)
	require.True(t, result.ApartmentUpdated)

	app := f.apps.byEmail["a@x.com"]
	require.Equal(t, domain.ApplicationChecked, app.Status)
	require.NotNil(t, app.Approved)
	require.True(t, *app.Approved)
	require.Equal(t, "2024-01-01", app.AcceptDate)

	require.Equal(t, domain.RoleMember, f.users.byEmail["a@x.com"].Role)
	require.False(t, apt.Available)

	require.Contains(t, f.publisher.subjects, "application.accepted")
	require.Equal(t, 1, f.mail.calls)
	require.True(t, f.mail.lastAccepted)
}

func TestRejectReleasesApartment(t *testing.T) {
	f := newFixture()
	apt := f.addApartment(t)
	f.addUser(t, "a@x.com", domain.RoleUser)

	submitted, err := f.svc.Submit(context.Background(), "a@x.com", apt.ID.Hex())
	require.NoError(t, err)
	require.False(t, apt.Available)

	result, err := f.svc.Reject(context.Background(), &domain.RejectReq{
		ID:          submitted.Application.ID.Hex(),
		ApartmentID: apt.ID.Hex(),
	})
	require.NoError(t, err)
	require.True(t, result.ApplicationUpdated)
	require.True(t, result.ApartmentUpdated)

	app := f.apps.byEmail["a@x.com"]
	require.Equal(t, domain.ApplicationChecked, app.Status)
	require.NotNil(t, app.Approved)
	require.False(t, *app.Approved)
	require.Empty(t, app.AcceptDate)

	require.Equal(t, domain.RoleUser, f.users.byEmail["a@x.com"].Role, "reject must not change the role")
	require.True(t, apt.Available)

	require.Contains(t, f.publisher.subjects, "application.rejected")
	require.Equal(t, "a@x.com", f.mail.lastTo)
	require.False(t, f.mail.lastAccepted)
}

func TestRejectedApplicantStaysBlocked(t *testing.T) {
	f := newFixture()
	apt := f.addApartment(t)
	f.addUser(t, "a@x.com", domain.RoleUser)

	submitted, err := f.svc.Submit(context.Background(), "a@x.com", apt.ID.Hex())
	require.NoError(t, err)

	_, err = f.svc.Reject(context.Background(), &domain.RejectReq{
		ID:          submitted.Application.ID.Hex(),
		ApartmentID: apt.ID.Hex(),
	})
	require.NoError(t, err)

	// The duplicate check ignores status, so a decided application
	// still blocks resubmission.
	result, err := f.svc.Submit(context.Background(), "a@x.com", apt.ID.Hex())
	require.NoError(t, err)
	require.True(t, result.AlreadyApplied)
}

func TestAcceptSurfacesPartialFailure(t *testing.T) {
	f := newFixture()
	apt := f.addApartment(t)
	f.addUser(t, "a@x.com", domain.RoleUser)

	submitted, err := f.svc.Submit(context.Background(), "a@x.com", apt.ID.Hex())
	require.NoError(t, err)

	f.users.updateErr = errors.New("write failed")

	result, err := f.svc.Accept(context.Background(), &domain.AcceptReq{
		ID:          submitted.Application.ID.Hex(),
		Email:       "a@x.com",
		ApartmentID: apt.ID.Hex(),
		Date:        "2024-01-01",
	})
	require.NoError(t, err)
	require.True(t, result.ApplicationUpdated)
	require.False(t, result.RoleUpdated)
	require.True(t, result.ApartmentUpdated, "writes are independent, later ones still run")
}

// ---------- Degrade ----------

func TestDegradeSetsRoleToUser(t *testing.T) {
	f := newFixture()
	f.addUser(t, "m@x.com", domain.RoleMember)

	ok, err := f.svc.Degrade(context.Background(), "m@x.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.RoleUser, f.users.byEmail["m@x.com"].Role)
	require.Contains(t, f.publisher.subjects, "member.degraded")
}

func TestDegradeUnknownUser(t *testing.T) {
	f := newFixture()

	ok, err := f.svc.Degrade(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	require.False(t, ok)
}
