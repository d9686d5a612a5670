package service

import (
	"context"
	"time"

	"Catalog/internal/model"
	"Catalog/internal/repo"

	"github.com/google/uuid"
)

// DefaultSessionTTL - срок жизни web-сессии по умолчанию.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionService управляет серверными сессиями web-интерфейса.
type SessionService struct {
	repo repo.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionService(r repo.SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{repo: r, ttl: ttl, now: time.Now}
}

func (s *SessionService) TTL() time.Duration { return s.ttl }

// Create открывает новую сессию пользователя.
func (s *SessionService) Create(ctx context.Context, userID int64) (*model.Session, error) {
	now := s.now().UTC()
	sess := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Resolve возвращает действующую сессию. Истёкшая сессия удаляется и даёт ErrNotFound.
func (s *SessionService) Resolve(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, wrapNotFound("session")
	}
	sess, err := s.repo.GetSession(ctx, id)
	miss, err := missing(sess, err)
	if err != nil {
		return nil, err
	}
	if miss {
		return nil, wrapNotFound("session")
	}
	if sess.Expired(s.now()) {
		_ = s.repo.DeleteSession(ctx, id)
		return nil, wrapNotFound("session")
	}
	return sess, nil
}

func (s *SessionService) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, id)
}

// Purge удаляет все истёкшие сессии.
func (s *SessionService) Purge(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
