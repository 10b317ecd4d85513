package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/helpers"
)

// ProfileInput carries the self-service editable user fields.
type ProfileInput struct {
	Firstname string `json:"firstname" binding:"required,min=2,max=60"`
	Lastname  string `json:"lastname" binding:"required,min=2,max=60"`
	Email     string `json:"email" binding:"omitempty,email"`
}

// UserService owns profile management and the administrative user
// operations.
type UserService struct {
	users   repository.UserRepository
	gcs     *storage.Client
	bucket  string
	rdb     *redis.Client
	es      *elasticsearch.Client
	esIndex string
	bus     *events.Bus
	logger  *logrus.Logger
}

func NewUserService(
	users repository.UserRepository,
	gcs *storage.Client,
	bucket string,
	rdb *redis.Client,
	es *elasticsearch.Client,
	esIndex string,
	bus *events.Bus,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		users: users, gcs: gcs, bucket: bucket, rdb: rdb,
		es: es, esIndex: esIndex, bus: bus, logger: logger,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile rewrites the caller's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Firstname = in.Firstname
	u.Lastname = in.Lastname
	u.Email = in.Email
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindUsers, Kind: events.Update}, u,
		events.Meta{ActorID: userID})
	return u, nil
}

// UploadAvatar stores the image in the avatar bucket and points the
// profile at its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID, contentType string, data io.Reader) (*entity.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	objectPath := fmt.Sprintf("avatars/%s/%d", userID, time.Now().UnixNano())
	url, err := helpers.UploadObject(ctx, s.gcs, s.bucket, objectPath, contentType, data)
	if err != nil {
		return nil, err
	}
	u.AvatarURL = url
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindUsers, Kind: events.Update}, u,
		events.Meta{ActorID: userID})
	return u, nil
}

// SetBanned flips the ban flag. Banning also drops the user's session so
// outstanding tokens die immediately.
func (s *UserService) SetBanned(ctx context.Context, id string, banned bool, actorID string) error {
	if err := s.users.SetBanned(ctx, id, banned); err != nil {
		return err
	}
	if banned && s.rdb != nil {
		if err := helpers.RedisDel(ctx, s.rdb, sessionKey(id)); err != nil {
			s.logger.WithError(err).WithField("user_id", id).Warn("session drop on ban failed")
		}
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindUsers, Kind: events.Update}, u,
		events.Meta{ActorID: actorID, SubjectID: id})
	return nil
}

// Delete tombstones the account and drops its session.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.SoftDelete(ctx, id, actorID); err != nil {
		return err
	}
	if s.rdb != nil {
		if err := helpers.RedisDel(ctx, s.rdb, sessionKey(id)); err != nil {
			s.logger.WithError(err).WithField("user_id", id).Warn("session drop on delete failed")
		}
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindUsers, Kind: events.Delete}, u,
		events.Meta{ActorID: actorID, SubjectID: id})
	return nil
}

// List pages through live users, optionally filtered by a name or mobile
// query.
func (s *UserService) List(ctx context.Context, query string, req repository.PageRequest) (*repository.Page[entity.User], error) {
	return s.users.List(ctx, query, req)
}

// Search runs a fuzzy multi_match against the user search mirror. Without
// an Elasticsearch client it degrades to an empty result rather than an
// error, matching how the rest of the pipeline treats a missing mirror.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.es == nil || s.esIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"firstname^2", "lastname^2", "mobile"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.es.Search(
		s.es.Search.WithContext(c),
		s.es.Search.WithIndex(s.esIndex),
		s.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
