package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ephemera/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CreateCategory assigns a fresh id and stores the document.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) (string, error) {
	doc := c.Clone()
	doc.ID = uuid.NewString()

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal category: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, CategoryKey(doc.ID), data, 0)
	pipe.SAdd(ctx, OwnerCategoriesKey(doc.OwnerID), doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to save category: %w", err)
	}

	return doc.ID, nil
}

func (s *Store) getCategory(ctx context.Context, id string) (*domain.Category, error) {
	data, err := s.client.Get(ctx, CategoryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("category not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	var c domain.Category
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category: %w", err)
	}

	return &c, nil
}

// CategoriesByOwner retrieves all category documents for an owner.
func (s *Store) CategoriesByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	ids, err := s.client.SMembers(ctx, OwnerCategoriesKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ids: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Category{}, nil
	}

	categories := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		c, err := s.getCategory(ctx, id)
		if err != nil {
			continue
		}
		categories = append(categories, c)
	}

	return categories, nil
}

// DeleteCategory removes the document and its owner-set membership.
// Bookmarks referencing the category are left alone; consumers must
// tolerate the orphaned reference.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	c, err := s.getCategory(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, CategoryKey(id))
	pipe.SRem(ctx, OwnerCategoriesKey(c.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
