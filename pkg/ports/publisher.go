package ports

import (
	"context"

	"github.com/aretw0/superdense/pkg/domain"
)

// EventPublisher forwards run events to an external broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *domain.Event) error
}
