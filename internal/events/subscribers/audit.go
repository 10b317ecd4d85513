package subscribers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/events"
)

// AuditLogger writes one structured log line per domain event. It is the
// first subscriber registered so the audit record exists even when a later
// subscriber fails.
type AuditLogger struct {
	Logger *logrus.Logger
}

func NewAuditLogger(logger *logrus.Logger) *AuditLogger {
	return &AuditLogger{Logger: logger}
}

func (a *AuditLogger) Register(bus *events.Bus) {
	kinds := []entity.Kind{entity.KindUsers, entity.KindCompanies, entity.KindProjects, entity.KindResumes}
	ops := []events.Kind{events.Create, events.Update, events.Delete, events.SetManager, events.UnsetManager}
	for _, k := range kinds {
		for _, op := range ops {
			bus.Subscribe(events.Topic{Entity: k, Kind: op}, "audit", a.log)
		}
	}
}

func (a *AuditLogger) log(_ context.Context, e events.Event) error {
	fields := logrus.Fields{
		"topic":    e.Topic.String(),
		"actor_id": e.Meta.ActorID,
		"at":       e.At,
	}
	if e.Meta.SubjectID != "" {
		fields["subject_id"] = e.Meta.SubjectID
	}
	if id := payloadID(e.Payload); id != "" {
		fields["entity_id"] = id
	}
	a.Logger.WithFields(fields).Info("domain event")
	return nil
}

func payloadID(payload any) string {
	switch v := payload.(type) {
	case *entity.User:
		return v.ID
	case *entity.Company:
		return v.ID
	case *entity.Project:
		return v.ID
	case *entity.Resume:
		return v.ID
	default:
		return ""
	}
}
