package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/church-cms/internal/events"
	"github.com/spec-kit/church-cms/internal/repository"
	"github.com/spec-kit/church-cms/internal/resource"
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// fakeStore is an in-memory ResourceStore honoring the same contract as the
// Postgres implementation: pgx.ErrNoRows for absent rows, conflict errors for
// unique violations, and cascade deletion of dependent rows across a
// fakeStoreSet, mirroring the FK declarations the real schema enforces.
type fakeStore struct {
	desc      resource.Descriptor
	set       *fakeStoreSet
	records   []repository.Record
	listCalls int
}

func newFakeStore(desc resource.Descriptor) *fakeStore {
	return &fakeStore{desc: desc}
}

// fakeStoreSet groups stores by table so deletes can cascade between them.
type fakeStoreSet struct {
	stores map[string]*fakeStore
}

func newFakeStoreSet() *fakeStoreSet {
	return &fakeStoreSet{stores: make(map[string]*fakeStore)}
}

func (s *fakeStoreSet) add(desc resource.Descriptor) *fakeStore {
	store := &fakeStore{desc: desc, set: s}
	s.stores[desc.Table] = store
	return store
}

func (f *fakeStore) List(_ context.Context) ([]repository.Record, error) {
	f.listCalls++
	out := make([]repository.Record, 0, len(f.records))
	for _, rec := range f.records {
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (f *fakeStore) GetByKey(_ context.Context, key string) (repository.Record, error) {
	for _, rec := range f.records {
		if rec[f.desc.KeyField] == key {
			return cloneRecord(rec), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) Create(_ context.Context, fields map[string]any) (repository.Record, error) {
	for _, field := range f.desc.Fields {
		if !field.Unique {
			continue
		}
		val, ok := fields[field.Name]
		if !ok {
			continue
		}
		for _, rec := range f.records {
			if rec[field.Name] == val {
				return nil, apperrors.NewConflict(f.desc.Name + " already exists")
			}
		}
	}

	rec := repository.Record{"id": uuid.NewString()}
	for _, field := range f.desc.Fields {
		if val, ok := fields[field.Name]; ok {
			rec[field.Name] = val
		} else {
			rec[field.Name] = nil
		}
	}
	f.records = append(f.records, rec)
	return cloneRecord(rec), nil
}

func (f *fakeStore) Update(_ context.Context, key string, fields map[string]any) (repository.Record, error) {
	for _, rec := range f.records {
		if rec[f.desc.KeyField] != key {
			continue
		}
		for name, val := range fields {
			rec[name] = val
		}
		return cloneRecord(rec), nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	for i, rec := range f.records {
		if rec[f.desc.KeyField] == key {
			f.records = append(f.records[:i], f.records[i+1:]...)
			f.cascade(rec)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// cascade removes rows in other stores whose declared references point at the
// deleted record, matching the ON DELETE CASCADE behavior of the schema.
func (f *fakeStore) cascade(deleted repository.Record) {
	if f.set == nil {
		return
	}
	for _, dep := range f.set.stores {
		for _, ref := range dep.desc.References {
			if ref.Table != f.desc.Table {
				continue
			}
			parentVal := deleted[f.fieldForColumn(ref.Column)]
			remaining := make([]repository.Record, 0, len(dep.records))
			var removed []repository.Record
			for _, rec := range dep.records {
				if rec[ref.Field] == parentVal {
					removed = append(removed, rec)
				} else {
					remaining = append(remaining, rec)
				}
			}
			dep.records = remaining
			for _, rec := range removed {
				dep.cascade(rec)
			}
		}
	}
}

func (f *fakeStore) fieldForColumn(column string) string {
	if column == "id" {
		return "id"
	}
	for _, fl := range f.desc.Fields {
		if fl.Column == column {
			return fl.Name
		}
	}
	return "id"
}

func cloneRecord(rec repository.Record) repository.Record {
	out := make(repository.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[key], nil
}

func (f *fakeCache) SetBytes(_ context.Context, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = payload
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func newPageService(t *testing.T) (*ResourceService, *fakeStore) {
	t.Helper()
	desc, ok := resource.ByPath("pages")
	require.True(t, ok)
	store := newFakeStore(desc)
	svc := NewResourceService(desc, store, nil, nil, zap.NewNop())
	return svc, store
}

func TestCreateThenGetReturnsProjection(t *testing.T) {
	svc, _ := newPageService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, map[string]any{"title": "Home", "slug": "home"})
	require.NoError(t, err)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Home", created["title"])
	assert.Equal(t, "home", created["slug"])

	fetched, err := svc.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreateMissingRequiredFields(t *testing.T) {
	svc, store := newPageService(t)

	_, err := svc.Create(context.Background(), map[string]any{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Title and slug required", domainErr.Message)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Empty(t, store.records, "nothing persisted on validation failure")
}

func TestCreateUniqueConflict(t *testing.T) {
	svc, _ := newPageService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, map[string]any{"title": "Home", "slug": "home"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, map[string]any{"title": "Other", "slug": "home"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestUpdatePartialSemantics(t *testing.T) {
	svc, _ := newPageService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, map[string]any{"title": "Home", "slug": "home"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "home", map[string]any{"title": "Welcome"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", updated["title"])
	assert.Equal(t, "home", updated["slug"], "absent fields stay untouched")

	fetched, err := svc.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", fetched["title"])
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newPageService(t)

	_, err := svc.Update(context.Background(), "missing", map[string]any{"title": "x"})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Equal(t, "Page not found", domainErr.Message)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	svc, _ := newPageService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, map[string]any{"title": "Home", "slug": "home"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "home"))

	_, err = svc.Get(ctx, "home")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)

	err = svc.Delete(ctx, "home")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestDeleteServantCascadesToServices(t *testing.T) {
	servantDesc, ok := resource.ByPath("servants")
	require.True(t, ok)
	parishionerDesc, ok := resource.ByPath("parishioners")
	require.True(t, ok)
	serviceDesc, ok := resource.ByPath("services")
	require.True(t, ok)

	set := newFakeStoreSet()
	servantSvc := NewResourceService(servantDesc, set.add(servantDesc), nil, nil, zap.NewNop())
	parishionerSvc := NewResourceService(parishionerDesc, set.add(parishionerDesc), nil, nil, zap.NewNop())
	serviceSvc := NewResourceService(serviceDesc, set.add(serviceDesc), nil, nil, zap.NewNop())
	ctx := context.Background()

	servant, err := servantSvc.Create(ctx, map[string]any{"name": "Ivan", "surname": "Petrov"})
	require.NoError(t, err)
	parishioner, err := parishionerSvc.Create(ctx, map[string]any{"name": "Olga", "surname": "Marchuk"})
	require.NoError(t, err)

	_, err = serviceSvc.Create(ctx, map[string]any{
		"title":         "Sunday liturgy",
		"description":   "Weekly service",
		"identifier":    "sunday-liturgy",
		"date":          "2026-09-06",
		"time":          "10:00",
		"location":      "Main hall",
		"servantId":     servant["id"],
		"parishionerId": parishioner["id"],
	})
	require.NoError(t, err)

	require.NoError(t, servantSvc.Delete(ctx, servant["id"].(string)))

	services, err := serviceSvc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, services, "services lose their rows when the servant goes away")

	_, err = serviceSvc.Get(ctx, "sunday-liturgy")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestDeletePageCascadesToContentBlocks(t *testing.T) {
	pageDesc, ok := resource.ByPath("pages")
	require.True(t, ok)
	blockDesc, ok := resource.ByPath("cntblocks")
	require.True(t, ok)

	set := newFakeStoreSet()
	pageSvc := NewResourceService(pageDesc, set.add(pageDesc), nil, nil, zap.NewNop())
	blockSvc := NewResourceService(blockDesc, set.add(blockDesc), nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err := pageSvc.Create(ctx, map[string]any{"title": "Home", "slug": "home"})
	require.NoError(t, err)
	_, err = blockSvc.Create(ctx, map[string]any{
		"pageSlug":   "home",
		"identifier": "hero",
		"content":    "Welcome to the parish",
	})
	require.NoError(t, err)
	_, err = blockSvc.Create(ctx, map[string]any{
		"pageSlug":   "about",
		"identifier": "history",
		"content":    "Founded in 1890",
	})
	require.NoError(t, err)

	require.NoError(t, pageSvc.Delete(ctx, "home"))

	blocks, err := blockSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, blocks, 1, "only blocks of the deleted page disappear")
	assert.Equal(t, "history", blocks[0]["identifier"])
}

func TestListCacheReadThroughAndInvalidation(t *testing.T) {
	desc, ok := resource.ByPath("pages")
	require.True(t, ok)

	store := newFakeStore(desc)
	cache := newFakeCache()
	dispatcher := events.NewInMemoryDispatcher()
	NewCacheInvalidator(cache, zap.NewNop()).RegisterHandlers(dispatcher)

	svc := NewResourceService(desc, store, cache, dispatcher, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, map[string]any{"title": "Home", "slug": "home"})
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, store.listCalls)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls, "second list served from cache")
	require.Len(t, second, 1)
	assert.Equal(t, "Home", second[0]["title"])

	_, err = svc.Update(ctx, "home", map[string]any{"title": "Welcome"})
	require.NoError(t, err)

	third, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls, "mutation invalidates the cached list")
	require.Len(t, third, 1)
	assert.Equal(t, "Welcome", third[0]["title"])
}

func TestNeedSubmissionPublishesNotificationEvent(t *testing.T) {
	desc, ok := resource.ByPath("needs")
	require.True(t, ok)

	dispatcher := events.NewInMemoryDispatcher()
	var received []events.Event
	dispatcher.Subscribe(events.EventNeedSubmitted, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	svc := NewResourceService(desc, newFakeStore(desc), nil, dispatcher, zap.NewNop())

	_, err := svc.Create(context.Background(), map[string]any{
		"token":   "tok-1",
		"title":   "Roof repair",
		"content": "The chapel roof leaks",
		"email":   "warden@example.com",
		"name":    "Anna",
		"surname": "Kovach",
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.NeedSubmittedPayload)
	require.True(t, ok)
	assert.Equal(t, "Roof repair", payload.Title)
	assert.Equal(t, "warden@example.com", payload.Email)
}
