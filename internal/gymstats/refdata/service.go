package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/2beens/gymbot/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=refdata_test

type vocabularyRepo interface {
	ListGroups(ctx context.Context) ([]MuscleGroup, error)
	ListExercises(ctx context.Context, groupID int) ([]Exercise, error)
	ListReps(ctx context.Context) ([]int, error)
	ListWeights(ctx context.Context) ([]float64, error)
	EnsureGroup(ctx context.Context, name string) (int, error)
	EnsureExercise(ctx context.Context, groupID int, name string) (int, error)
	EnsureReps(ctx context.Context, reps int) error
	EnsureWeight(ctx context.Context, weight float64) error
	GetGroup(ctx context.Context, id int) (*MuscleGroup, error)
	GetExercise(ctx context.Context, id int) (*Exercise, error)
	FindExercise(ctx context.Context, groupName, name string) (*Exercise, error)
}

const (
	DefaultCacheSize   = 4 * 1024 * 1024 // 4MB
	listCacheTTLSecond = 5 * 60

	cacheKeyGroups  = "groups"
	cacheKeyReps    = "reps"
	cacheKeyWeights = "weights"
)

func cacheKeyExercises(groupID int) string {
	return "exercises:" + strconv.Itoa(groupID)
}

// Service is the reference data entry point used by the flow engine.
// Listings are served from an in-process cache; every ensure call drops
// the listing it may have changed.
type Service struct {
	repo  vocabularyRepo
	cache *freecache.Cache
}

func NewService(repo vocabularyRepo, cache *freecache.Cache) *Service {
	if cache == nil {
		cache = freecache.NewCache(DefaultCacheSize)
	}
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) ListGroups(ctx context.Context) ([]MuscleGroup, error) {
	return cachedList(s.cache, cacheKeyGroups, func() ([]MuscleGroup, error) {
		return s.repo.ListGroups(ctx)
	})
}

func (s *Service) ListExercises(ctx context.Context, groupID int) ([]Exercise, error) {
	return cachedList(s.cache, cacheKeyExercises(groupID), func() ([]Exercise, error) {
		return s.repo.ListExercises(ctx, groupID)
	})
}

func (s *Service) ListReps(ctx context.Context) ([]int, error) {
	return cachedList(s.cache, cacheKeyReps, func() ([]int, error) {
		return s.repo.ListReps(ctx)
	})
}

func (s *Service) ListWeights(ctx context.Context) ([]float64, error) {
	return cachedList(s.cache, cacheKeyWeights, func() ([]float64, error) {
		return s.repo.ListWeights(ctx)
	})
}

func (s *Service) EnsureGroup(ctx context.Context, name string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.refdata.ensure_group")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = NormalizeName(name)
	if err := checkName(name, MaxGroupNameLen); err != nil {
		return 0, err
	}

	id, err := s.repo.EnsureGroup(ctx, name)
	if err != nil {
		return 0, err
	}
	s.cache.Del([]byte(cacheKeyGroups))

	span.SetAttributes(attribute.Int("group.id", id))
	return id, nil
}

func (s *Service) EnsureExercise(ctx context.Context, groupID int, name string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.refdata.ensure_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = NormalizeName(name)
	if err := checkName(name, MaxExerciseNameLen); err != nil {
		return 0, err
	}

	id, err := s.repo.EnsureExercise(ctx, groupID, name)
	if err != nil {
		return 0, err
	}
	s.cache.Del([]byte(cacheKeyExercises(groupID)))

	span.SetAttributes(attribute.Int("exercise.id", id))
	return id, nil
}

func (s *Service) EnsureReps(ctx context.Context, reps int) error {
	if reps <= 0 || reps > MaxReps {
		return fmt.Errorf("%w: reps must be in [1, %d], got %d", ErrInvalidValue, MaxReps, reps)
	}
	if err := s.repo.EnsureReps(ctx, reps); err != nil {
		return err
	}
	s.cache.Del([]byte(cacheKeyReps))
	return nil
}

// EnsureWeight stores the weight rounded to two decimals, as the column keeps it.
func (s *Service) EnsureWeight(ctx context.Context, weight float64) error {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) || RoundWeight(weight) > MaxWeight {
		return fmt.Errorf("%w: weight must be in [0, %v], got %v", ErrInvalidValue, MaxWeight, weight)
	}
	if err := s.repo.EnsureWeight(ctx, RoundWeight(weight)); err != nil {
		return err
	}
	s.cache.Del([]byte(cacheKeyWeights))
	return nil
}

func (s *Service) GetGroup(ctx context.Context, id int) (*MuscleGroup, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) GetExercise(ctx context.Context, id int) (*Exercise, error) {
	return s.repo.GetExercise(ctx, id)
}

func (s *Service) FindExercise(ctx context.Context, groupName, name string) (*Exercise, error) {
	return s.repo.FindExercise(ctx, NormalizeName(groupName), NormalizeName(name))
}

// checkName expects a normalized name and counts characters, like varchar does.
func checkName(name string, maxLen int) error {
	if name == "" {
		return ErrEmptyName
	}
	if n := utf8.RuneCountInString(name); n > maxLen {
		return fmt.Errorf("%w: %d characters, max %d", ErrNameTooLong, n, maxLen)
	}
	return nil
}

func RoundWeight(weight float64) float64 {
	return math.Round(weight*100) / 100
}

func cachedList[T any](cache *freecache.Cache, key string, load func() ([]T, error)) ([]T, error) {
	if raw, err := cache.Get([]byte(key)); err == nil {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		log.Warnf("refdata cache: corrupted entry [%s], reloading", key)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("refdata cache get [%s]: %s", key, err)
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(items)
	if err != nil {
		log.Warnf("refdata cache marshal [%s]: %s", key, err)
		return items, nil
	}
	if err := cache.Set([]byte(key), raw, listCacheTTLSecond); err != nil {
		log.Warnf("refdata cache set [%s]: %s", key, err)
	}

	return items, nil
}
