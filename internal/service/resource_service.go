package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/church-cms/internal/events"
	"github.com/spec-kit/church-cms/internal/repository"
	"github.com/spec-kit/church-cms/internal/resource"
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// ContentCache caches public content projections. A nil implementation or a
// miss simply falls through to the store.
type ContentCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, payload []byte) error
	Invalidate(ctx context.Context, keys ...string) error
}

// ResourceService implements the CRUD contract for one entity type. All nine
// content entities share this implementation, parameterized by descriptor.
type ResourceService struct {
	desc       resource.Descriptor
	store      repository.ResourceStore
	cache      ContentCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewResourceService builds the service for a descriptor.
func NewResourceService(desc resource.Descriptor, store repository.ResourceStore, cache ContentCache, dispatcher events.Dispatcher, logger *zap.Logger) *ResourceService {
	return &ResourceService{
		desc:       desc,
		store:      store,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Descriptor exposes the entity descriptor for route registration.
func (s *ResourceService) Descriptor() resource.Descriptor {
	return s.desc
}

// List returns all entities in their public projection. Public content is
// served read-through from the cache when available.
func (s *ResourceService) List(ctx context.Context) ([]repository.Record, error) {
	cacheKey := ListCacheKey(s.desc.Path)

	if s.desc.PublicRead && s.cache != nil {
		payload, err := s.cache.GetBytes(ctx, cacheKey)
		if err != nil {
			s.logger.Warn("content cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if payload != nil {
			var records []repository.Record
			if err := json.Unmarshal(payload, &records); err == nil {
				return records, nil
			}
			s.logger.Warn("content cache payload corrupt", zap.String("key", cacheKey))
		}
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.desc.PublicRead && s.cache != nil {
		if payload, err := json.Marshal(records); err == nil {
			if err := s.cache.SetBytes(ctx, cacheKey, payload); err != nil {
				s.logger.Warn("content cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return records, nil
}

// Get returns a single entity by its lookup key.
func (s *ResourceService) Get(ctx context.Context, key string) (repository.Record, error) {
	record, err := s.store.GetByKey(ctx, key)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound(s.desc.Name)
		}
		return nil, err
	}
	return record, nil
}

// Create validates required fields, inserts the entity and publishes the
// change.
func (s *ResourceService) Create(ctx context.Context, input map[string]any) (repository.Record, error) {
	if err := s.desc.ValidateCreate(input); err != nil {
		return nil, err
	}

	record, err := s.store.Create(ctx, s.desc.Sanitize(input))
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, record, events.ActionCreated)
	return record, nil
}

// Update applies partial-update semantics: only fields present in the input
// overwrite stored values.
func (s *ResourceService) Update(ctx context.Context, key string, input map[string]any) (repository.Record, error) {
	record, err := s.store.Update(ctx, key, s.desc.Sanitize(input))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound(s.desc.Name)
		}
		return nil, err
	}

	s.publishChange(ctx, record, events.ActionUpdated)
	return record, nil
}

// Delete removes the entity; the store cascades dependent rows.
func (s *ResourceService) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound(s.desc.Name)
		}
		return err
	}

	s.publishChange(ctx, repository.Record{}, events.ActionDeleted)
	return nil
}

func (s *ResourceService) publishChange(ctx context.Context, record repository.Record, action events.Action) {
	if s.dispatcher == nil {
		return
	}

	key, _ := record[s.desc.KeyField].(string)
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventContentChanged,
		Resource:  s.desc.Path,
		Key:       key,
		Timestamp: time.Now(),
		Payload:   events.ContentChangedPayload{Action: action},
	})

	if s.desc.Path == "needs" && action == events.ActionCreated {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventNeedSubmitted,
			Resource:  s.desc.Path,
			Key:       key,
			Timestamp: time.Now(),
			Payload: events.NeedSubmittedPayload{
				Title:   asString(record["title"]),
				Email:   asString(record["email"]),
				Name:    asString(record["name"]),
				Surname: asString(record["surname"]),
			},
		})
	}
}

// ListCacheKey names the cached list projection for a route segment.
func ListCacheKey(path string) string {
	return "cms:" + path + ":list"
}

func asString(val any) string {
	s, _ := val.(string)
	return s
}
