package flow

import (
	"time"

	"github.com/2beens/gymbot/internal/gymstats/stats"
)

type Mode int

const (
	ModeNone Mode = iota
	ModeSingle
	ModeSuperset
	ModeStats
)

// Flow is the mode specific part of a session:
// *SingleFlow, *SupersetFlow or *StatsFlow.
type Flow interface {
	Mode() Mode
	clone() Flow
}

type SingleFlow struct {
	GroupID    int
	ExerciseID int
	Reps       int
	Weight     *float64
}

func (f *SingleFlow) Mode() Mode { return ModeSingle }

func (f *SingleFlow) clone() Flow {
	c := *f
	return &c
}

// Pick holds the selections of one superset half.
type Pick struct {
	GroupID      int
	ExerciseID   int
	Reps         int
	Weight       *float64
	WeightChosen bool
}

type SupersetFlow struct {
	Halves  [2]Pick
	Pending Half
}

func (f *SupersetFlow) Mode() Mode { return ModeSuperset }

func (f *SupersetFlow) clone() Flow {
	c := *f
	return &c
}

func (f *SupersetFlow) pick(h Half) *Pick {
	return &f.Halves[h]
}

type StatsFlow struct {
	Month        stats.YearMonth
	Day          time.Time
	GroupID      int
	ExerciseID   int
	ExerciseName string
}

func (f *StatsFlow) Mode() Mode { return ModeStats }

func (f *StatsFlow) clone() Flow {
	c := *f
	return &c
}

// Suspension remembers where to return after a vocabulary insert.
type Suspension struct {
	Resume State
	Half   Half
}

// Choice is what a rendered button stands for.
type Choice struct {
	Kind   ActionKind
	ID     int
	Label  string
	Reps   int
	Weight float64
	Month  stats.YearMonth
	Date   time.Time
}

// Menu is the lookup table of the last rendered keyboard of one kind;
// a token's index points into Choices.
type Menu struct {
	Choices []Choice
}

type Session struct {
	owner int64

	State     State
	Flow      Flow
	SetNumber int
	Suspended *Suspension
	Menus     map[MenuKind]Menu
}

func NewSession() *Session {
	return &Session{
		State:     StateMainMenu,
		SetNumber: 1,
		Menus:     map[MenuKind]Menu{},
	}
}

func (s *Session) Mode() Mode {
	if s.Flow == nil {
		return ModeNone
	}
	return s.Flow.Mode()
}

func (s *Session) Single() (*SingleFlow, bool) {
	f, ok := s.Flow.(*SingleFlow)
	return f, ok
}

func (s *Session) Superset() (*SupersetFlow, bool) {
	f, ok := s.Flow.(*SupersetFlow)
	return f, ok
}

func (s *Session) Stats() (*StatsFlow, bool) {
	f, ok := s.Flow.(*StatsFlow)
	return f, ok
}

// restart drops everything but the menu tables and switches to the given flow.
func (s *Session) restart(state State, f Flow) {
	s.State = state
	s.Flow = f
	s.SetNumber = 1
	s.Suspended = nil
}

func (s *Session) clone() *Session {
	c := *s
	if s.Flow != nil {
		c.Flow = s.Flow.clone()
	}
	if s.Suspended != nil {
		susp := *s.Suspended
		c.Suspended = &susp
	}
	c.Menus = make(map[MenuKind]Menu, len(s.Menus))
	for k, v := range s.Menus {
		c.Menus[k] = v
	}
	return &c
}
