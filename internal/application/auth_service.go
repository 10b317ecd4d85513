package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/apperr"
	"github.com/hiredeck/hiredeck/pkg/helpers"
	"github.com/hiredeck/hiredeck/pkg/mailer"
)

// SignupInput registers a new account. Mobile is the login identity.
type SignupInput struct {
	Firstname string `json:"firstname" binding:"required,min=2,max=60"`
	Lastname  string `json:"lastname" binding:"required,min=2,max=60"`
	Mobile    string `json:"mobile" binding:"required,mobile"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

// LoginInput authenticates by mobile and password.
type LoginInput struct {
	Mobile   string `json:"mobile" binding:"required,mobile"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is what login and refresh hand to the HTTP layer, which moves
// the tokens into cookies.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Session is the server-side record that makes logout effective before
// token expiry. Keyed in Redis by user id; rotating or deleting it
// invalidates every token carrying an older session id.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func sessionKey(userID string) string { return "user:session:" + userID }

// AuthService owns signup, login, token refresh and logout.
type AuthService struct {
	users      repository.UserRepository
	rdb        *redis.Client
	jwt        *helpers.JWTManager
	bus        *events.Bus
	queue      *helpers.RabbitPublisher
	logger     *logrus.Logger
	sessionTTL time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	rdb *redis.Client,
	jwt *helpers.JWTManager,
	bus *events.Bus,
	queue *helpers.RabbitPublisher,
	logger *logrus.Logger,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		users: users, rdb: rdb, jwt: jwt, bus: bus,
		queue: queue, logger: logger, sessionTTL: sessionTTL,
	}
}

// Signup creates the account and queues a welcome email when an address
// was given. The mobile number must not belong to a live user; the unique
// index turns a lost race into the same Conflict.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Mobile:    in.Mobile,
		Email:     in.Email,
		Password:  hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindUsers, Kind: events.Create}, u,
		events.Meta{ActorID: u.ID})
	if s.queue != nil && u.Email != "" {
		job := mailer.EmailJob{
			To:       u.Email,
			Subject:  mailer.SubjectFor(mailer.TemplateWelcome),
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Firstname": u.Firstname},
		}
		if err := s.queue.PublishJSON(ctx, job); err != nil {
			s.logger.WithError(err).Warn("welcome email enqueue failed")
		}
	}
	return u, nil
}

// Login verifies credentials and rotates the user's session. The error is
// the same for an unknown mobile and a wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*entity.User, *TokenPair, error) {
	u, err := s.users.FindByMobile(ctx, in.Mobile)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil, apperr.Unauthorized("invalid mobile or password")
		}
		return nil, nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, nil, apperr.Unauthorized("invalid mobile or password")
	}
	if u.IsBanned {
		return nil, nil, apperr.Unauthorized("account is banned")
	}
	pair, err := s.startSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair, rotating the
// session id so the old refresh token dies with the exchange.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	var sess Session
	hit, err := helpers.RedisGetJSON(ctx, s.rdb, sessionKey(claims.UserID), &sess)
	if err != nil {
		return nil, err
	}
	if !hit || sess.SessionID != claims.SessionID {
		return nil, apperr.Unauthorized("session expired")
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("session expired")
	}
	if u.IsBanned {
		return nil, apperr.Unauthorized("account is banned")
	}
	return s.startSession(ctx, u.ID)
}

// Logout drops the server-side session. Outstanding tokens fail the
// session check from then on.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.rdb, sessionKey(userID))
}

// ValidateSession checks an access token's session id against the live
// session. The auth middleware calls this on every request.
func (s *AuthService) ValidateSession(ctx context.Context, claims *helpers.Claims) error {
	var sess Session
	hit, err := helpers.RedisGetJSON(ctx, s.rdb, sessionKey(claims.UserID), &sess)
	if err != nil {
		return err
	}
	if !hit || sess.SessionID != claims.SessionID {
		return apperr.Unauthorized("session expired")
	}
	return nil
}

func (s *AuthService) startSession(ctx context.Context, userID string) (*TokenPair, error) {
	sess := Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := helpers.RedisSetJSON(ctx, s.rdb, sessionKey(userID), sess, s.sessionTTL); err != nil {
		return nil, err
	}
	access, aexp, err := s.jwt.GenerateAccessToken(userID, sess.SessionID)
	if err != nil {
		return nil, err
	}
	refresh, rexp, err := s.jwt.GenerateRefreshToken(userID, sess.SessionID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  aexp,
		RefreshToken:     refresh,
		RefreshExpiresAt: rexp,
	}, nil
}
