// Package session keeps the per-owner wizard state in memory.
//
// Every owner gets its own entry guarded by its own mutex, so actions of
// one owner are serialized while different owners proceed in parallel.
// Entries that were not touched for the idle timeout are evicted.
package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/2beens/gymbot/internal/telemetry/metrics"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const DefaultIdleTimeout = time.Hour

type entry[T any] struct {
	mu  sync.Mutex
	val T
}

type Store[T any] struct {
	cache          *cache.Cache
	newValue       func() T
	metricsManager *metrics.Manager
}

// NewStore creates a store whose absent entries are initialized with newValue.
// metricsManager may be nil.
func NewStore[T any](idleTimeout time.Duration, newValue func() T, metricsManager *metrics.Manager) *Store[T] {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	cleanupInterval := idleTimeout / 2
	if cleanupInterval > time.Minute {
		cleanupInterval = time.Minute
	}

	s := &Store[T]{
		cache:          cache.New(idleTimeout, cleanupInterval),
		newValue:       newValue,
		metricsManager: metricsManager,
	}
	s.cache.OnEvicted(s.onEvicted)

	return s
}

func (s *Store[T]) onEvicted(key string, _ any) {
	log.Debugf("session store: evicted session for owner %s", key)
	if s.metricsManager != nil {
		s.metricsManager.CounterSessionsEvicted.Inc()
		s.metricsManager.GaugeSessions.Set(float64(s.cache.ItemCount()))
	}
}

func ownerKey(owner int64) string {
	return strconv.FormatInt(owner, 10)
}

func (s *Store[T]) load(key string) *entry[T] {
	for {
		if v, ok := s.cache.Get(key); ok {
			return v.(*entry[T])
		}

		e := &entry[T]{val: s.newValue()}
		if err := s.cache.Add(key, e, cache.DefaultExpiration); err == nil {
			if s.metricsManager != nil {
				s.metricsManager.GaugeSessions.Set(float64(s.cache.ItemCount()))
			}
			return e
		}
		// lost the race against another creator, pick up theirs
	}
}

// lock returns the live entry for key with its mutex held and its idle timer refreshed.
func (s *Store[T]) lock(key string) *entry[T] {
	for {
		e := s.load(key)
		e.mu.Lock()

		cur, ok := s.cache.Get(key)
		switch {
		case ok && cur.(*entry[T]) == e:
			s.cache.Set(key, e, cache.DefaultExpiration)
			return e
		case !ok:
			// expired while waiting for the lock, put it back
			if err := s.cache.Add(key, e, cache.DefaultExpiration); err == nil {
				return e
			}
		}

		e.mu.Unlock()
	}
}

// Get returns the owner's current value, creating it if absent.
func (s *Store[T]) Get(owner int64) T {
	e := s.lock(ownerKey(owner))
	defer e.mu.Unlock()
	return e.val
}

// Update runs fn on the owner's value while holding the owner lock.
// The value returned by fn replaces the stored one only when fn succeeds.
func (s *Store[T]) Update(owner int64, fn func(T) (T, error)) error {
	e := s.lock(ownerKey(owner))
	defer e.mu.Unlock()

	updated, err := fn(e.val)
	if err != nil {
		return err
	}
	e.val = updated

	return nil
}

// Reset replaces the owner's value wholesale.
func (s *Store[T]) Reset(owner int64, val T) {
	e := s.lock(ownerKey(owner))
	defer e.mu.Unlock()
	e.val = val
}

func (s *Store[T]) Delete(owner int64) {
	s.cache.Delete(ownerKey(owner))
}

func (s *Store[T]) Len() int {
	return s.cache.ItemCount()
}
