package events

import (
	"time"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
)

// Kind is a lifecycle event kind, scoped per entity kind through Topic.
type Kind string

const (
	Create       Kind = "CREATE"
	Update       Kind = "UPDATE"
	Delete       Kind = "DELETE"
	SetManager   Kind = "SET_MANAGER"
	UnsetManager Kind = "UNSET_MANAGER"
)

// Topic keys the subscriber registry: one entity kind, one event kind.
type Topic struct {
	Entity entity.Kind
	Kind   Kind
}

func (t Topic) String() string {
	return string(t.Entity) + "." + string(t.Kind)
}

// Meta carries event metadata that is not part of the payload.
type Meta struct {
	// ActorID is the user who triggered the mutation.
	ActorID string
	// SubjectID is the user the event concerns, when that differs from the
	// actor (the grantee of a SET_MANAGER, the revokee of an UNSET_MANAGER).
	SubjectID string
}

// Event is the transient message handed to subscribers. It is not
// persisted; it exists only for the duration of dispatch. The payload is
// the mutated entity as already written to the store.
type Event struct {
	Topic   Topic
	Payload any
	At      time.Time
	Meta    Meta
}
