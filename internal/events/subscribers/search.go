package subscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/events"
)

// SearchIndexer mirrors users, companies, projects and resumes into Elasticsearch
// so list/search endpoints can query them. It runs inside the event
// pipeline; failures are reported to the bus and logged there.
type SearchIndexer struct {
	ES     *elasticsearch.Client
	Prefix string
}

func NewSearchIndexer(es *elasticsearch.Client, prefix string) *SearchIndexer {
	return &SearchIndexer{ES: es, Prefix: prefix}
}

// Register wires the indexer into every lifecycle topic it cares about.
func (s *SearchIndexer) Register(bus *events.Bus) {
	for _, kind := range []entity.Kind{entity.KindUsers, entity.KindCompanies, entity.KindProjects} {
		bus.Subscribe(events.Topic{Entity: kind, Kind: events.Create}, "search-indexer", s.index)
		bus.Subscribe(events.Topic{Entity: kind, Kind: events.Update}, "search-indexer", s.index)
		bus.Subscribe(events.Topic{Entity: kind, Kind: events.Delete}, "search-indexer", s.remove)
	}
	bus.Subscribe(events.Topic{Entity: entity.KindResumes, Kind: events.Create}, "search-indexer", s.index)
	bus.Subscribe(events.Topic{Entity: entity.KindResumes, Kind: events.Update}, "search-indexer", s.index)
	bus.Subscribe(events.Topic{Entity: entity.KindResumes, Kind: events.Delete}, "search-indexer", s.remove)
}

func (s *SearchIndexer) index(ctx context.Context, e events.Event) error {
	if s.ES == nil {
		return nil
	}
	id, doc := documentFor(e.Payload)
	if id == "" {
		return fmt.Errorf("search: no document for topic %s", e.Topic)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      s.indexName(e.Topic.Entity),
		DocumentID: id,
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("search: index %s/%s: %s", e.Topic.Entity, id, res.Status())
	}
	return nil
}

func (s *SearchIndexer) remove(ctx context.Context, e events.Event) error {
	if s.ES == nil {
		return nil
	}
	id, _ := documentFor(e.Payload)
	if id == "" {
		return fmt.Errorf("search: no document for topic %s", e.Topic)
	}
	req := esapi.DeleteRequest{Index: s.indexName(e.Topic.Entity), DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// 404 is fine: the entity was never indexed.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete %s/%s: %s", e.Topic.Entity, id, res.Status())
	}
	return nil
}

func (s *SearchIndexer) indexName(kind entity.Kind) string {
	return s.Prefix + "-" + string(kind)
}

func documentFor(payload any) (string, map[string]any) {
	switch v := payload.(type) {
	case *entity.User:
		return v.ID, map[string]any{
			"id":         v.ID,
			"firstname":  v.Firstname,
			"lastname":   v.Lastname,
			"mobile":     v.Mobile,
			"avatar_url": v.AvatarURL,
			"created_at": v.CreatedAt.Format(time.RFC3339Nano),
		}
	case *entity.Company:
		return v.ID, map[string]any{
			"id":         v.ID,
			"name":       v.Name,
			"is_active":  v.IsActive,
			"created_by": v.CreatedBy,
			"created_at": v.CreatedAt.Format(time.RFC3339Nano),
		}
	case *entity.Project:
		return v.ID, map[string]any{
			"id":          v.ID,
			"name":        v.Name,
			"description": v.Description,
			"company_id":  v.CompanyID,
			"is_active":   v.IsActive,
			"created_at":  v.CreatedAt.Format(time.RFC3339Nano),
		}
	case *entity.Resume:
		return v.ID, map[string]any{
			"id":         v.ID,
			"firstname":  v.Firstname,
			"lastname":   v.Lastname,
			"mobile":     v.Mobile,
			"company_id": v.CompanyID,
			"project_id": v.ProjectID,
			"status":     string(v.Status),
			"created_at": v.CreatedAt.Format(time.RFC3339Nano),
		}
	default:
		return "", nil
	}
}
