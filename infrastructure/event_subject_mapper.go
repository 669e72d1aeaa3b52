package infrastructure

import (
	"fmt"

	"bootcamp/events"
)

// NATS subjects for domain events
const (
	SubjectPointsAwarded = "points.awarded"
	SubjectUserCreated   = "users.created"
)

// DomainEventStream is the JetStream stream holding every published subject
const DomainEventStream = "bootcamp_events"

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypePointsAwarded:
		return SubjectPointsAwarded
	case events.EventTypeUserCreated:
		return SubjectUserCreated
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case SubjectPointsAwarded:
		return events.EventTypePointsAwarded
	case SubjectUserCreated:
		return events.EventTypeUserCreated
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectPointsAwarded,
		SubjectUserCreated,
	}
}

// GetAllEventTypes returns every event type that has a subject
func (m *EventSubjectMapper) GetAllEventTypes() []events.EventType {
	return []events.EventType{
		events.EventTypePointsAwarded,
		events.EventTypeUserCreated,
	}
}
