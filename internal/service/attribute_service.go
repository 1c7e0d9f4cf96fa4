package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jfuentes/recipebox/internal/logger"
	"github.com/jfuentes/recipebox/internal/models"
	"github.com/jfuentes/recipebox/internal/storage"
)

// AttributeService implements the shared tag/ingredient contract; the
// two services are instances over different stores.
type AttributeService struct {
	store storage.AttributeStorage
	kind  string
	log   *logger.Logger
}

func NewAttributeService(store storage.AttributeStorage, kind string) *AttributeService {
	return &AttributeService{
		store: store,
		kind:  kind,
		log:   logger.New(kind + "-service"),
	}
}

func (s *AttributeService) List(ctx context.Context, userID string) ([]*models.Attribute, error) {
	attrs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}

	return attrs, nil
}

// Create stamps ownership from the caller; any owner supplied in the
// request payload is ignored.
func (s *AttributeService) Create(ctx context.Context, userID, name string) (*models.Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	attr, err := s.store.Create(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}

	s.log.Debug("Created %s %s for user %s", s.kind, attr.ID, userID)
	return attr, nil
}

// ValidateOwned checks that every id resolves to a record owned by the
// caller. Cross-user references are rejected the same as unknown ids.
func (s *AttributeService) ValidateOwned(ctx context.Context, userID string, ids []string) ([]string, error) {
	unique := dedupe(ids)

	for _, id := range unique {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("%w: bad %s id %q", ErrInvalidReference, s.kind, id)
		}
	}

	if len(unique) == 0 {
		return unique, nil
	}

	count, err := s.store.CountOwned(ctx, userID, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s references: %w", s.kind, err)
	}

	if count != len(unique) {
		return nil, fmt.Errorf("%w: one or more %s ids are unknown", ErrInvalidReference, s.kind)
	}

	return unique, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}
