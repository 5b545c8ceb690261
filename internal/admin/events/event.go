package events

import (
	"fmt"
	"time"
)

type EventType string

const (
	Created EventType = "created"
	Updated EventType = "updated"
	Deleted EventType = "deleted"
)

// Entity names carried by events and used as cache namespaces.
const (
	EntityEmployee             = "employee"
	EntityEstablishment        = "establishment"
	EntityEstablishmentAddress = "establishment_address"
	EntityEstablishmentContact = "establishment_contact"
	EntityEstablishmentPhone   = "establishment_phone"
	EntityEstablishmentMember  = "establishment_member"
	EntityEmployeeRole         = "employee_role"
	EntitySocialMediaPlatform  = "social_media_platform"
)

// Event announces a committed change to one entity.
type Event struct {
	Type       EventType `json:"type"`
	Entity     string    `json:"entity"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(eventType EventType, entity string, id fmt.Stringer) Event {
	return Event{
		Type:       eventType,
		Entity:     entity,
		ID:         id.String(),
		OccurredAt: time.Now().UTC(),
	}
}

// Name is the routing name of the event, e.g. "establishment_phone.created".
func (ev Event) Name() string {
	return ev.Entity + "." + string(ev.Type)
}

// Publisher receives committed changes. Produce must not block on I/O for
// long; the kafka Producer only enqueues.
type Publisher interface {
	Produce(event Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Event)

func (f PublisherFunc) Produce(event Event) { f(event) }

// Fanout hands every event to each publisher in order. Nil entries are
// skipped.
type Fanout []Publisher

func (f Fanout) Produce(event Event) {
	for _, p := range f {
		if p != nil {
			p.Produce(event)
		}
	}
}
