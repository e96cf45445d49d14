package anonymous

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const DefaultTTL = 30 * 24 * time.Hour

// Service issues anonymous session tokens. The session id travels inside the
// signed token, so nothing is stored server side.
type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		tokens: newTokenManager(secret),
		ttl:    ttl,
	}
}

func (s *Service) Issue(ctx context.Context) (accessToken, anonymousID string, err error) {
	anonymousID = uuid.NewString()
	accessToken, err = s.tokens.Issue(anonymousID, s.ttl)
	if err != nil {
		return "", "", err
	}
	return accessToken, anonymousID, nil
}

func (s *Service) LookupByToken(ctx context.Context, token string) (string, error) {
	id, err := s.tokens.Validate(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return id, nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
