package service

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/wellbreathe/backend/internal/dataset"
	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/internal/observability"
)

// FavoritesStore keeps the user's saved cities under domain.FavoritesKey.
//
// Every mutation is a full read-modify-write of the stored list. Mutations on
// one store are serialised by mu; separate processes writing the same key are
// not coordinated.
type FavoritesStore struct {
	store   KeyValueStore
	catalog *dataset.Catalog
	metrics *observability.Metrics
	log     *zap.Logger

	mu sync.Mutex
}

// NewFavoritesStore creates a favorites store over the given persistence port
func NewFavoritesStore(
	store KeyValueStore,
	catalog *dataset.Catalog,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *FavoritesStore {
	return &FavoritesStore{
		store:   store,
		catalog: catalog,
		metrics: metrics,
		log:     logger.With(zap.String("component", "favorites")),
	}
}

// List returns the stored favorites in insertion order.
// A missing key, a storage failure or corrupt content all yield an empty list.
func (s *FavoritesStore) List(ctx context.Context) []domain.FavoriteEntry {
	entries, err := s.read(ctx)
	if err != nil {
		s.log.Warn("favorites unreadable, treating as empty", zap.Error(err))
		s.metrics.FavoritesReadDegraded.Inc()
		return []domain.FavoriteEntry{}
	}
	return entries
}

// IsFavorite reports whether name is saved (exact match)
func (s *FavoritesStore) IsFavorite(ctx context.Context, name string) bool {
	return containsName(s.List(ctx), name)
}

// Names returns the saved names as a set
func (s *FavoritesStore) Names(ctx context.Context) map[string]bool {
	entries := s.List(ctx)
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.Name] = true
	}
	return set
}

// AddDefault saves name with the default threshold
func (s *FavoritesStore) AddDefault(ctx context.Context, name string) error {
	return s.Add(ctx, name, domain.DefaultThreshold)
}

// Add saves name unless it is already present; a repeated add is a no-op
func (s *FavoritesStore) Add(ctx context.Context, name string, threshold float64) error {
	if err := validateEntry(name, threshold); err != nil {
		return err
	}
	return s.mutate(ctx, "add", func(entries []domain.FavoriteEntry) []domain.FavoriteEntry {
		if containsName(entries, name) {
			return entries
		}
		return append(entries, domain.FavoriteEntry{Name: name, Threshold: threshold})
	})
}

// Remove deletes name if present; removing an absent name is a no-op
func (s *FavoritesStore) Remove(ctx context.Context, name string) error {
	return s.mutate(ctx, "remove", func(entries []domain.FavoriteEntry) []domain.FavoriteEntry {
		return slices.DeleteFunc(entries, func(e domain.FavoriteEntry) bool { return e.Name == name })
	})
}

// Toggle removes name when saved and adds it with the default threshold otherwise.
// It returns whether name is saved afterwards.
func (s *FavoritesStore) Toggle(ctx context.Context, name string) (bool, error) {
	if err := validateEntry(name, domain.DefaultThreshold); err != nil {
		return false, err
	}

	var saved bool
	err := s.mutate(ctx, "toggle", func(entries []domain.FavoriteEntry) []domain.FavoriteEntry {
		if containsName(entries, name) {
			saved = false
			return slices.DeleteFunc(entries, func(e domain.FavoriteEntry) bool { return e.Name == name })
		}
		saved = true
		return append(entries, domain.FavoriteEntry{Name: name, Threshold: domain.DefaultThreshold})
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

// Clear overwrites the stored list with an empty one without reading it first,
// which also recovers from corrupt content.
func (s *FavoritesStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.write(ctx, []domain.FavoriteEntry{})
	s.observe("clear", err)
	return err
}

// ResolveDetails joins entries against the city table, dropping names the
// table no longer has, and orders the result by collated location_name.
func (s *FavoritesStore) ResolveDetails(entries []domain.FavoriteEntry) []domain.CityRecord {
	out := make([]domain.CityRecord, 0, len(entries))
	for _, e := range entries {
		city, ok := s.catalog.Find(e.Name)
		if !ok {
			s.log.Debug("favorite no longer in dataset", zap.String("name", e.Name))
			continue
		}
		out = append(out, city)
	}
	dataset.SortByName(out, s.catalog.Locale())
	return out
}

// Details lists and resolves in one call
func (s *FavoritesStore) Details(ctx context.Context) []domain.CityRecord {
	return s.ResolveDetails(s.List(ctx))
}

// Health checks the underlying store
func (s *FavoritesStore) Health(ctx context.Context) error {
	return s.store.Health(ctx)
}

func (s *FavoritesStore) mutate(ctx context.Context, op string, apply func([]domain.FavoriteEntry) []domain.FavoriteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err == nil {
		err = s.write(ctx, apply(entries))
	}
	s.observe(op, err)
	return err
}

func (s *FavoritesStore) observe(op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		s.log.Error("favorites mutation failed", zap.String("op", op), zap.Error(err))
	}
	s.metrics.FavoritesMutations.WithLabelValues(op, outcome).Inc()
}

func (s *FavoritesStore) read(ctx context.Context) ([]domain.FavoriteEntry, error) {
	raw, ok, err := s.store.Get(ctx, domain.FavoritesKey)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read favorites", Err: err}
	}
	if !ok {
		return []domain.FavoriteEntry{}, nil
	}

	var entries []domain.FavoriteEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &domain.PersistenceError{Op: "decode favorites", Err: eris.Wrap(err, "favorites: corrupt stored list")}
	}
	if entries == nil {
		entries = []domain.FavoriteEntry{}
	}
	return entries, nil
}

func (s *FavoritesStore) write(ctx context.Context, entries []domain.FavoriteEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return &domain.PersistenceError{Op: "encode favorites", Err: err}
	}
	if err := s.store.Set(ctx, domain.FavoritesKey, string(raw)); err != nil {
		return &domain.PersistenceError{Op: "write favorites", Err: err}
	}
	return nil
}

func validateEntry(name string, threshold float64) error {
	if strings.TrimSpace(name) == "" {
		return &domain.ValidationError{Field: "name", Value: name, Reason: "must not be empty"}
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return &domain.ValidationError{Field: "threshold", Value: strconv.FormatFloat(threshold, 'g', -1, 64), Reason: "must be a finite number"}
	}
	return nil
}

func containsName(entries []domain.FavoriteEntry, name string) bool {
	return slices.ContainsFunc(entries, func(e domain.FavoriteEntry) bool { return e.Name == name })
}
