package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/platform/mailer"
	"github.com/rentloft/rentloft-api/internal/repo/mongodb"
	"github.com/rentloft/rentloft-api/pkg/events"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

// ErrInvalidID marks a malformed entity reference in a request.
var ErrInvalidID = errors.New("invalid id")

const AlreadyAppliedMessage = "already applied"

// SubmitResult surfaces the outcome of each write Submit attempts.
// There is no rollback: a failed apartment write leaves the inserted
// application in place and is reported as ApartmentUpdated=false.
type SubmitResult struct {
	Message          string              `json:"message"`
	AlreadyApplied   bool                `json:"alreadyApplied"`
	Application      *domain.Application `json:"application,omitempty"`
	ApartmentUpdated bool                `json:"apartmentUpdated"`
}

// DecisionResult surfaces the outcome of each independent write an
// admin decision attempts. Partial failure is possible and reported,
// never rolled back.
type DecisionResult struct {
	ApplicationUpdated bool `json:"applicationUpdated"`
	RoleUpdated        bool `json:"roleUpdated"`
	ApartmentUpdated   bool `json:"apartmentUpdated"`
}

type ApplicationService interface {
	Submit(ctx context.Context, email, apartmentID string) (*SubmitResult, error)
	Accept(ctx context.Context, req *domain.AcceptReq) (*DecisionResult, error)
	Reject(ctx context.Context, req *domain.RejectReq) (*DecisionResult, error)
	Degrade(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
}

type applicationService struct {
	applications mongodb.ApplicationRepository
	apartments   mongodb.ApartmentRepository
	users        mongodb.UserRepository
	publisher    events.Publisher
	mail         mailer.Service
}

func NewApplicationService(
	applications mongodb.ApplicationRepository,
	apartments mongodb.ApartmentRepository,
	users mongodb.UserRepository,
	publisher events.Publisher,
	mail mailer.Service,
) ApplicationService {
	return &applicationService{
		applications: applications,
		apartments:   apartments,
		users:        users,
		publisher:    publisher,
		mail:         mail,
	}
}

func (s *applicationService) Submit(ctx context.Context, email, apartmentID string) (*SubmitResult, error) {
	aptID, err := primitive.ObjectIDFromHex(apartmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: apartment %q", ErrInvalidID, apartmentID)
	}

	app := &domain.Application{
		Email:       email,
		ApartmentID: apartmentID,
	}

	// Single conditional write keyed on email: at most one application
	// per applicant, even under concurrent submission.
	inserted, err := s.applications.InsertIfAbsent(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}
	if !inserted {
		return &SubmitResult{
			Message:        AlreadyAppliedMessage,
			AlreadyApplied: true,
		}, nil
	}

	result := &SubmitResult{
		Message:     "application submitted",
		Application: app,
	}

	updated, err := s.apartments.SetAvailability(ctx, aptID, false)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to mark apartment unavailable",
			"error", err, "apartment_id", apartmentID)
	}
	result.ApartmentUpdated = err == nil && updated

	s.publish(ctx, events.ApplicationSubmitted, events.ApplicationEvent{
		ApplicationID: app.ID.Hex(),
		Email:         email,
		ApartmentID:   apartmentID,
		OccurredAt:    time.Now(),
	})

	return result, nil
}

func (s *applicationService) Accept(ctx context.Context, req *domain.AcceptReq) (*DecisionResult, error) {
	appID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: application %q", ErrInvalidID, req.ID)
	}
	aptID, err := primitive.ObjectIDFromHex(req.ApartmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: apartment %q", ErrInvalidID, req.ApartmentID)
	}

	// Three independent writes, attempted unconditionally. Each outcome
	// is surfaced; none is rolled back.
	result := &DecisionResult{}

	ok, err := s.applications.Decide(ctx, appID, true, req.Date)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to mark application accepted", "error", err, "application_id", req.ID)
	}
	result.ApplicationUpdated = err == nil && ok

	ok, err = s.users.UpdateRole(ctx, req.Email, domain.RoleMember)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to promote applicant", "error", err, "email", req.Email)
	}
	result.RoleUpdated = err == nil && ok

	ok, err = s.apartments.SetAvailability(ctx, aptID, false)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to mark apartment unavailable", "error", err, "apartment_id", req.ApartmentID)
	}
	result.ApartmentUpdated = err == nil && ok

	s.publish(ctx, events.ApplicationAccepted, events.ApplicationEvent{
		ApplicationID: req.ID,
		Email:         req.Email,
		ApartmentID:   req.ApartmentID,
		OccurredAt:    time.Now(),
	})
	s.notify(ctx, req.Email, req.ApartmentID, true)

	return result, nil
}

func (s *applicationService) Reject(ctx context.Context, req *domain.RejectReq) (*DecisionResult, error) {
	appID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: application %q", ErrInvalidID, req.ID)
	}
	aptID, err := primitive.ObjectIDFromHex(req.ApartmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: apartment %q", ErrInvalidID, req.ApartmentID)
	}

	result := &DecisionResult{}

	ok, err := s.applications.Decide(ctx, appID, false, "")
	if err != nil {
		logger.ErrorContext(ctx, "Failed to mark application rejected", "error", err, "application_id", req.ID)
	}
	result.ApplicationUpdated = err == nil && ok

	ok, err = s.apartments.SetAvailability(ctx, aptID, true)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to release apartment", "error", err, "apartment_id", req.ApartmentID)
	}
	result.ApartmentUpdated = err == nil && ok

	email := ""
	if app, err := s.applications.FindByID(ctx, appID); err == nil && app != nil {
		email = app.Email
	}

	s.publish(ctx, events.ApplicationRejected, events.ApplicationEvent{
		ApplicationID: req.ID,
		Email:         email,
		ApartmentID:   req.ApartmentID,
		OccurredAt:    time.Now(),
	})
	if email != "" {
		s.notify(ctx, email, req.ApartmentID, false)
	}

	return result, nil
}

func (s *applicationService) Degrade(ctx context.Context, email string) (bool, error) {
	ok, err := s.users.UpdateRole(ctx, email, domain.RoleUser)
	if err != nil {
		return false, fmt.Errorf("failed to degrade member: %w", err)
	}

	s.publish(ctx, events.MemberDegraded, events.MemberEvent{
		Email:      email,
		OccurredAt: time.Now(),
	})

	return ok, nil
}

func (s *applicationService) GetByEmail(ctx context.Context, email string) (*domain.Application, error) {
	return s.applications.FindByEmail(ctx, email)
}

func (s *applicationService) List(ctx context.Context) ([]domain.Application, error) {
	return s.applications.List(ctx)
}

func (s *applicationService) publish(ctx context.Context, subject string, event interface{}) {
	if err := s.publisher.Publish(ctx, subject, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}

func (s *applicationService) notify(ctx context.Context, email, apartmentID string, accepted bool) {
	if err := s.mail.SendDecisionEmail(email, apartmentID, accepted); err != nil {
		logger.ErrorContext(ctx, "Failed to send decision email", "error", err, "email", email)
	}
}
