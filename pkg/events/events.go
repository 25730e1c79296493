package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// Subjects for rental lifecycle events
const (
	ApplicationSubmitted = "application.submitted"
	ApplicationAccepted  = "application.accepted"
	ApplicationRejected  = "application.rejected"
	MemberDegraded       = "member.degraded"
	AnnouncementCreated  = "announcement.created"
)

type ApplicationEvent struct {
	ApplicationID string    `json:"application_id"`
	Email         string    `json:"email"`
	ApartmentID   string    `json:"apartment_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type MemberEvent struct {
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AnnouncementEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	Title          string    `json:"title"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// NoopPublisher is used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "Event publishing disabled", "subject", subject)
	return nil
}

func (NoopPublisher) Close() error { return nil }
