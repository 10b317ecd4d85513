package subscribers

import (
	"context"
	"fmt"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/helpers"
	"github.com/hiredeck/hiredeck/pkg/mailer"
)

// Notifier turns grant and resume events into EmailJob messages on the
// notification queue. Sending itself happens in the notify worker; this
// subscriber only enqueues, so a slow SMTP provider never blocks the
// request that published the event.
type Notifier struct {
	Queue *helpers.RabbitPublisher
	Users repository.UserRepository
}

func NewNotifier(queue *helpers.RabbitPublisher, users repository.UserRepository) *Notifier {
	return &Notifier{Queue: queue, Users: users}
}

func (n *Notifier) Register(bus *events.Bus) {
	for _, kind := range []entity.Kind{entity.KindCompanies, entity.KindProjects} {
		bus.Subscribe(events.Topic{Entity: kind, Kind: events.SetManager}, "notifier", n.grantChanged(mailer.TemplateManagerAssigned))
		bus.Subscribe(events.Topic{Entity: kind, Kind: events.UnsetManager}, "notifier", n.grantChanged(mailer.TemplateManagerRevoked))
	}
	bus.Subscribe(events.Topic{Entity: entity.KindResumes, Kind: events.Update}, "notifier", n.resumeUpdated)
}

func (n *Notifier) grantChanged(template string) events.Handler {
	return func(ctx context.Context, e events.Event) error {
		if n.Queue == nil {
			return nil
		}
		if e.Meta.SubjectID == "" {
			return fmt.Errorf("notify: %s event without subject", e.Topic)
		}
		grantee, err := n.Users.FindByID(ctx, e.Meta.SubjectID)
		if err != nil {
			return fmt.Errorf("notify: resolve grantee %s: %w", e.Meta.SubjectID, err)
		}
		if grantee.Email == "" {
			return nil
		}
		job := mailer.EmailJob{
			To:       grantee.Email,
			Subject:  mailer.SubjectFor(template),
			Template: template,
			Data: map[string]any{
				"Firstname":  grantee.Firstname,
				"EntityKind": string(e.Topic.Entity),
				"EntityName": entityName(e.Payload),
			},
		}
		return n.Queue.PublishJSON(ctx, job)
	}
}

func (n *Notifier) resumeUpdated(ctx context.Context, e events.Event) error {
	if n.Queue == nil {
		return nil
	}
	r, ok := e.Payload.(*entity.Resume)
	if !ok || r.Email == "" {
		return nil
	}
	job := mailer.EmailJob{
		To:       r.Email,
		Subject:  mailer.SubjectFor(mailer.TemplateResumeStatus),
		Template: mailer.TemplateResumeStatus,
		Data: map[string]any{
			"CandidateName": r.Firstname + " " + r.Lastname,
			"Status":        string(r.Status),
		},
	}
	return n.Queue.PublishJSON(ctx, job)
}

func entityName(payload any) string {
	switch v := payload.(type) {
	case *entity.Company:
		return v.Name
	case *entity.Project:
		return v.Name
	default:
		return ""
	}
}
