// README: Session service hands out and registers anonymous session ids.
package session

import (
	"context"
	"fmt"
)

type Repository interface {
	Save(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ensure returns a registered session id. An empty id starts a new session;
// a malformed one is rejected.
func (s *Service) Ensure(ctx context.Context, id string) (string, error) {
	if id == "" {
		id = NewID()
	} else {
		var err error
		if id, err = Normalize(id); err != nil {
			return "", err
		}
	}
	if err := s.repo.Save(ctx, id); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}
