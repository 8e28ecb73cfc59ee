package mocks

import (
	"context"
	"sync"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

// MockAdmissionEventPublisher implements ports.AdmissionEventPublisher for
// testing the outbox relay without a real RabbitMQ connection.
type MockAdmissionEventPublisher struct {
	mu sync.RWMutex

	PublishedEvents  []ports.TenantAdmittedEvent
	PublishCallCount int

	PublishError error
}

var _ ports.AdmissionEventPublisher = (*MockAdmissionEventPublisher)(nil)

func NewMockAdmissionEventPublisher() *MockAdmissionEventPublisher {
	return &MockAdmissionEventPublisher{
		PublishedEvents: make([]ports.TenantAdmittedEvent, 0),
	}
}

func (m *MockAdmissionEventPublisher) PublishTenantAdmitted(ctx context.Context, evt ports.TenantAdmittedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++
	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

func (m *MockAdmissionEventPublisher) GetPublishedEvents() []ports.TenantAdmittedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.TenantAdmittedEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}
