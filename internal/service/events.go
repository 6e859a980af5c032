package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/repository"
)

// EventService records storefront actions for the owner's audit trail.
type EventService interface {
	// Record stores a single event entry.
	Record(ctx context.Context, entry *model.EventEntry) error

	// RecordMany stores multiple event entries in bulk.
	RecordMany(ctx context.Context, entries []*model.EventEntry) error

	// Query retrieves event entries matching the query options.
	Query(ctx context.Context, opts model.EventQueryOptions) ([]*model.EventEntry, error)

	// Count returns the count of event entries matching the query options.
	Count(ctx context.Context, opts model.EventQueryOptions) (int64, error)
}

// EventServiceImpl implements EventService. The repository may be nil
// when the database is disabled; recording then becomes a no-op so the
// storefront keeps working without an audit trail.
type EventServiceImpl struct {
	repo repository.EventsRepositoryInterface
}

// NewEventService creates an event service. repo may be nil.
func NewEventService(repo repository.EventsRepositoryInterface) EventService {
	return &EventServiceImpl{repo: repo}
}

// Record stores a single event entry.
func (s *EventServiceImpl) Record(ctx context.Context, entry *model.EventEntry) error {
	if s.repo == nil {
		return nil
	}
	stampEvent(entry)
	return s.repo.Create(ctx, entry)
}

// RecordMany stores multiple event entries in bulk.
func (s *EventServiceImpl) RecordMany(ctx context.Context, entries []*model.EventEntry) error {
	if s.repo == nil || len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		stampEvent(entry)
	}
	return s.repo.CreateMany(ctx, entries)
}

// Query retrieves event entries matching the query options.
func (s *EventServiceImpl) Query(ctx context.Context, opts model.EventQueryOptions) ([]*model.EventEntry, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.Query(ctx, opts)
}

// Count returns the count of event entries matching the query options.
func (s *EventServiceImpl) Count(ctx context.Context, opts model.EventQueryOptions) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	return s.repo.Count(ctx, opts)
}

func stampEvent(entry *model.EventEntry) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
}
