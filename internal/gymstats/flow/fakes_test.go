package flow_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/sets"
)

// memVocabulary is an in-memory reference data repo.
type memVocabulary struct {
	mu        sync.Mutex
	groups    []refdata.MuscleGroup
	exercises []refdata.Exercise
	reps      []int
	weights   []float64
	err       error
}

func newMemVocabulary() *memVocabulary {
	return &memVocabulary{
		reps:    []int{6, 8, 10, 12},
		weights: []float64{20, 40, 60},
	}
}

func (m *memVocabulary) ListGroups(_ context.Context) ([]refdata.MuscleGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	groups := slices.Clone(m.groups)
	slices.SortFunc(groups, func(a, b refdata.MuscleGroup) int { return strings.Compare(a.Name, b.Name) })
	return groups, nil
}

func (m *memVocabulary) ListExercises(_ context.Context, groupID int) ([]refdata.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var exercises []refdata.Exercise
	for _, ex := range m.exercises {
		if ex.MuscleGroupID == groupID {
			exercises = append(exercises, ex)
		}
	}
	slices.SortFunc(exercises, func(a, b refdata.Exercise) int { return strings.Compare(a.Name, b.Name) })
	return exercises, nil
}

func (m *memVocabulary) ListReps(_ context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	reps := slices.Clone(m.reps)
	slices.Sort(reps)
	return reps, nil
}

func (m *memVocabulary) ListWeights(_ context.Context) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	weights := slices.Clone(m.weights)
	slices.Sort(weights)
	return weights, nil
}

func (m *memVocabulary) EnsureGroup(_ context.Context, name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for _, g := range m.groups {
		if g.Name == name {
			return g.ID, nil
		}
	}
	id := len(m.groups) + 1
	m.groups = append(m.groups, refdata.MuscleGroup{ID: id, Name: name})
	return id, nil
}

func (m *memVocabulary) EnsureExercise(_ context.Context, groupID int, name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	found := false
	for _, g := range m.groups {
		found = found || g.ID == groupID
	}
	if !found {
		return 0, refdata.ErrGroupNotFound
	}
	for _, ex := range m.exercises {
		if ex.MuscleGroupID == groupID && ex.Name == name {
			return ex.ID, nil
		}
	}
	id := 100 + len(m.exercises) + 1
	m.exercises = append(m.exercises, refdata.Exercise{ID: id, MuscleGroupID: groupID, Name: name})
	return id, nil
}

func (m *memVocabulary) EnsureReps(_ context.Context, reps int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if !slices.Contains(m.reps, reps) {
		m.reps = append(m.reps, reps)
	}
	return nil
}

func (m *memVocabulary) EnsureWeight(_ context.Context, weight float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if !slices.Contains(m.weights, weight) {
		m.weights = append(m.weights, weight)
	}
	return nil
}

func (m *memVocabulary) GetGroup(_ context.Context, id int) (*refdata.MuscleGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.groups {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, refdata.ErrGroupNotFound
}

func (m *memVocabulary) GetExercise(_ context.Context, id int) (*refdata.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.exercises {
		if ex.ID == id {
			return &ex, nil
		}
	}
	return nil, refdata.ErrExerciseNotFound
}

func (m *memVocabulary) FindExercise(ctx context.Context, groupName, name string) (*refdata.Exercise, error) {
	m.mu.Lock()
	var groupID int
	for _, g := range m.groups {
		if g.Name == groupName {
			groupID = g.ID
		}
	}
	m.mu.Unlock()

	exercises, _ := m.ListExercises(ctx, groupID)
	for _, ex := range exercises {
		if ex.Name == name {
			return &ex, nil
		}
	}
	return nil, refdata.ErrExerciseNotFound
}

func (m *memVocabulary) names(exerciseID int) (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.exercises {
		if ex.ID != exerciseID {
			continue
		}
		for _, g := range m.groups {
			if g.ID == ex.MuscleGroupID {
				return g.Name, ex.Name
			}
		}
		return "", ex.Name
	}
	return "", ""
}

// memSets is an in-memory set repository.
type memSets struct {
	mu    sync.Mutex
	vocab *memVocabulary
	sets  []sets.CompletedSet
	pairs []sets.CompletedSupersetPair
	err   error
}

func (m *memSets) AppendSet(_ context.Context, set sets.CompletedSet) (*sets.CompletedSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	set.ID = len(m.sets) + 1
	set.Date = sets.DateOnly(set.Date)
	set.CreatedAt = time.Now()
	m.sets = append(m.sets, set)
	return &set, nil
}

func (m *memSets) AppendSupersetPair(_ context.Context, pair sets.CompletedSupersetPair) (*sets.CompletedSupersetPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	pair.ID = len(m.pairs) + 1
	pair.Date = sets.DateOnly(pair.Date)
	pair.CreatedAt = time.Now()
	m.pairs = append(m.pairs, pair)
	return &pair, nil
}

func (m *memSets) ListActivityDates(_ context.Context, owner int64, from, to time.Time) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var dates []time.Time
	add := func(d time.Time) {
		if !d.Before(from) && d.Before(to) && !slices.ContainsFunc(dates, d.Equal) {
			dates = append(dates, d)
		}
	}
	for _, s := range m.sets {
		if s.Owner == owner {
			add(s.Date)
		}
	}
	for _, p := range m.pairs {
		if p.Owner == owner {
			add(p.Date)
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	return dates, nil
}

func (m *memSets) ListForDay(_ context.Context, owner int64, date time.Time) (*sets.DayEntries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := &sets.DayEntries{}
	for _, s := range m.sets {
		if s.Owner != owner || !s.Date.Equal(date) {
			continue
		}
		group, name := m.vocab.names(s.ExerciseID)
		entries.Sets = append(entries.Sets, sets.DaySet{
			GroupName: group, ExerciseID: s.ExerciseID, ExerciseName: name,
			SetNumber: s.SetNumber, Reps: s.Reps, Weight: s.Weight, CreatedAt: s.CreatedAt,
		})
	}
	for _, p := range m.pairs {
		if p.Owner != owner || !p.Date.Equal(date) {
			continue
		}
		g1, n1 := m.vocab.names(p.FirstExerciseID)
		g2, n2 := m.vocab.names(p.SecondExerciseID)
		entries.Pairs = append(entries.Pairs, sets.DayPair{
			SetNumber: p.SetNumber,
			First:     sets.PairHalf{GroupName: g1, ExerciseID: p.FirstExerciseID, ExerciseName: n1, Reps: p.FirstReps, Weight: p.FirstWeight},
			Second:    sets.PairHalf{GroupName: g2, ExerciseID: p.SecondExerciseID, ExerciseName: n2, Reps: p.SecondReps, Weight: p.SecondWeight},
			CreatedAt: p.CreatedAt,
		})
	}
	return entries, nil
}

func (m *memSets) ListForExerciseSince(_ context.Context, owner int64, exerciseID int, since time.Time) ([]sets.ExerciseSetRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []sets.ExerciseSetRecord
	for _, s := range m.sets {
		if s.Owner == owner && s.ExerciseID == exerciseID && !s.Date.Before(since) {
			records = append(records, sets.ExerciseSetRecord{Date: s.Date, SetNumber: s.SetNumber, Reps: s.Reps, Weight: s.Weight})
		}
	}
	return records, nil
}

func (m *memSets) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *memSets) savedSets() []sets.CompletedSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sets)
}

func (m *memSets) savedPairs() []sets.CompletedSupersetPair {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.pairs)
}
