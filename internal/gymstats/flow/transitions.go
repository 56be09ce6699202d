package flow

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/sets"
	"github.com/2beens/gymbot/internal/gymstats/stats"
	"github.com/2beens/gymbot/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	reasonNoGroup  = "no group chosen"
	reasonNoReps   = "no reps chosen"
	reasonNoResume = "nothing to resume"
)

func (e *Engine) start(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	owner := s.owner
	*s = *NewSession()
	s.owner = owner
	return e.render(ctx, s)
}

func (e *Engine) toMainMenu(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	s.restart(StateMainMenu, nil)
	return e.render(ctx, s)
}

func (e *Engine) startSingle(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	s.restart(StateChooseGroup, &SingleFlow{})
	return e.render(ctx, s)
}

func (e *Engine) startSuperset(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	s.restart(StateChooseGroup1, &SupersetFlow{Pending: HalfFirst})
	return e.render(ctx, s)
}

func (e *Engine) startStats(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	s.restart(StateStatsMenu, &StatsFlow{})
	return e.render(ctx, s)
}

// advance moves to the state following the current one; superset halves
// are tracked along.
func (e *Engine) advance(ctx context.Context, s *Session) (RenderInstruction, error) {
	s.State = next[s.State]
	if f, ok := s.Superset(); ok {
		if h, ok := halfOf(s.State); ok {
			f.Pending = h
		}
	}
	return e.render(ctx, s)
}

func (e *Engine) pickGroup(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	switch f := s.Flow.(type) {
	case *SingleFlow:
		if f.GroupID != a.Choice.ID {
			f.ExerciseID = 0
		}
		f.GroupID = a.Choice.ID
	case *SupersetFlow:
		h, _ := halfOf(s.State)
		p := f.pick(h)
		if p.GroupID != a.Choice.ID {
			p.ExerciseID = 0
		}
		p.GroupID = a.Choice.ID
	case *StatsFlow:
		f.GroupID = a.Choice.ID
	default:
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "no active flow"}
	}

	return e.advance(ctx, s)
}

func (e *Engine) pickExercise(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	if s.currentGroup() == 0 {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: reasonNoGroup}
	}

	switch f := s.Flow.(type) {
	case *SingleFlow:
		if f.ExerciseID != a.Choice.ID {
			s.SetNumber = 1
		}
		f.ExerciseID = a.Choice.ID
		f.Reps = 0
		f.Weight = nil
	case *SupersetFlow:
		h, _ := halfOf(s.State)
		if f.pick(h).ExerciseID != a.Choice.ID {
			s.SetNumber = 1
		}
		f.pick(h).ExerciseID = a.Choice.ID
	case *StatsFlow:
		f.ExerciseID = a.Choice.ID
		f.ExerciseName = a.Choice.Label
	default:
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "no active flow"}
	}

	return e.advance(ctx, s)
}

func (e *Engine) pickReps(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	switch f := s.Flow.(type) {
	case *SingleFlow:
		f.Reps = a.Choice.Reps
		f.Weight = nil
	case *SupersetFlow:
		h, _ := halfOf(s.State)
		p := f.pick(h)
		p.Reps = a.Choice.Reps
		p.Weight = nil
		p.WeightChosen = false
	default:
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "no active flow"}
	}

	return e.advance(ctx, s)
}

func (e *Engine) pickWeight(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	var weight *float64
	if a.Kind == ActionWeight {
		w := a.Choice.Weight
		weight = &w
	}

	switch f := s.Flow.(type) {
	case *SingleFlow:
		if f.ExerciseID == 0 || f.Reps == 0 {
			return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: reasonNoReps}
		}
		f.Weight = weight
		if err := e.commitSet(ctx, s, f); err != nil {
			return RenderInstruction{}, err
		}
	case *SupersetFlow:
		h, _ := halfOf(s.State)
		p := f.pick(h)
		if p.Reps == 0 {
			return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: reasonNoReps}
		}
		p.Weight = weight
		p.WeightChosen = true
		if h == HalfSecond {
			if err := e.commitPair(ctx, s, f); err != nil {
				return RenderInstruction{}, err
			}
		}
	default:
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "no active flow"}
	}

	return e.advance(ctx, s)
}

func (e *Engine) commitSet(ctx context.Context, s *Session, f *SingleFlow) error {
	saved, err := e.sets.AppendSet(ctx, sets.CompletedSet{
		Owner:      s.owner,
		Date:       e.today(),
		ExerciseID: f.ExerciseID,
		SetNumber:  s.SetNumber,
		Reps:       f.Reps,
		Weight:     f.Weight,
	})
	if err != nil {
		return e.mapStoreErr(s, ActionWeight, "append set", err)
	}

	log.Infof("flow: saved set %d for owner %d: exercise %d, %d reps, weight %s",
		saved.SetNumber, s.owner, saved.ExerciseID, saved.Reps, formatOptionalWeight(saved.Weight))
	if e.metricsManager != nil {
		e.metricsManager.CounterSetsSaved.Inc()
	}
	return nil
}

func (e *Engine) commitPair(ctx context.Context, s *Session, f *SupersetFlow) error {
	first, second := f.pick(HalfFirst), f.pick(HalfSecond)
	if first.ExerciseID == 0 || second.ExerciseID == 0 || first.Reps == 0 || !first.WeightChosen {
		return &SequenceError{State: s.State, Action: ActionWeight, Reason: "first half incomplete"}
	}

	saved, err := e.sets.AppendSupersetPair(ctx, sets.CompletedSupersetPair{
		Owner:            s.owner,
		Date:             e.today(),
		FirstExerciseID:  first.ExerciseID,
		SecondExerciseID: second.ExerciseID,
		SetNumber:        s.SetNumber,
		FirstReps:        first.Reps,
		FirstWeight:      first.Weight,
		SecondReps:       second.Reps,
		SecondWeight:     second.Weight,
	})
	if err != nil {
		return e.mapStoreErr(s, ActionWeight, "append superset pair", err)
	}

	log.Infof("flow: saved superset %d for owner %d: exercises %d/%d",
		saved.SetNumber, s.owner, saved.FirstExerciseID, saved.SecondExerciseID)
	if e.metricsManager != nil {
		e.metricsManager.CounterPairsSaved.Inc()
	}
	return nil
}

func (e *Engine) nextSet(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	switch f := s.Flow.(type) {
	case *SingleFlow:
		f.Reps = 0
		f.Weight = nil
		s.State = StateChooseReps
	case *SupersetFlow:
		for h := range f.Halves {
			f.Halves[h].Reps = 0
			f.Halves[h].Weight = nil
			f.Halves[h].WeightChosen = false
		}
		f.Pending = HalfFirst
		s.State = StateChooseReps1
	default:
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "no active flow"}
	}

	s.SetNumber++
	return e.render(ctx, s)
}

func (e *Engine) suspend(ctx context.Context, s *Session, to State) (RenderInstruction, error) {
	h, _ := halfOf(s.State)
	if f, ok := s.Superset(); ok {
		f.Pending = h
	}
	s.Suspended = &Suspension{Resume: s.State, Half: h}
	s.State = to
	return e.render(ctx, s)
}

func (e *Engine) askGroupName(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	return e.suspend(ctx, s, StateAwaitGroupName)
}

func (e *Engine) askExerciseName(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	return e.suspend(ctx, s, StateAwaitExerciseName)
}

func (e *Engine) askReps(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	return e.suspend(ctx, s, StateAddReps)
}

func (e *Engine) askWeight(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	return e.suspend(ctx, s, StateAddWeight)
}

// resume returns to the menu that was showing before the input prompt,
// restoring the superset half that was awaiting input.
func (e *Engine) resume(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	if s.Suspended == nil {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: reasonNoResume}
	}

	s.State = s.Suspended.Resume
	if f, ok := s.Superset(); ok {
		f.Pending = s.Suspended.Half
	}
	s.Suspended = nil

	return e.render(ctx, s)
}

func (e *Engine) submitName(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	if s.Suspended == nil {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: reasonNoResume}
	}

	name := refdata.NormalizeName(a.Text)
	if name == "" {
		return RenderInstruction{}, &ValidationError{Message: "Пустое название. Отправьте корректный текст."}
	}
	maxLen := refdata.MaxGroupNameLen
	if s.State == StateAwaitExerciseName {
		maxLen = refdata.MaxExerciseNameLen
	}
	if utf8.RuneCountInString(name) > maxLen {
		return RenderInstruction{}, nameTooLong(maxLen)
	}

	switch s.State {
	case StateAwaitGroupName:
		id, err := e.refData.EnsureGroup(ctx, name)
		if err != nil {
			return RenderInstruction{}, e.mapStoreErr(s, a.Kind, "ensure group", err)
		}
		log.Debugf("flow: group %q (%d) ensured by owner %d", name, id, s.owner)
	case StateAwaitExerciseName:
		groupID := s.suspendedGroup()
		if groupID == 0 {
			return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: reasonNoGroup}
		}
		id, err := e.refData.EnsureExercise(ctx, groupID, name)
		if err != nil {
			return RenderInstruction{}, e.mapStoreErr(s, a.Kind, "ensure exercise", err)
		}
		log.Debugf("flow: exercise %q (%d) in group %d ensured by owner %d", name, id, groupID, s.owner)
	}

	return e.resume(ctx, s, a)
}

// suspendedGroup is the group chosen for the half the prompt was opened from.
func (s *Session) suspendedGroup() int {
	switch f := s.Flow.(type) {
	case *SingleFlow:
		return f.GroupID
	case *SupersetFlow:
		return f.pick(s.Suspended.Half).GroupID
	}
	return 0
}

func (e *Engine) submitValue(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	if s.Suspended == nil {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: reasonNoResume}
	}

	switch s.State {
	case StateAddReps:
		reps := a.Choice.Reps
		if a.Kind == ActionText {
			var err error
			if reps, err = parseReps(a.Text); err != nil {
				return RenderInstruction{}, err
			}
		}
		if err := e.refData.EnsureReps(ctx, reps); err != nil {
			return RenderInstruction{}, e.mapStoreErr(s, a.Kind, "ensure reps", err)
		}
	case StateAddWeight:
		weight := a.Choice.Weight
		if a.Kind == ActionText {
			var err error
			if weight, err = parseWeight(a.Text); err != nil {
				return RenderInstruction{}, err
			}
		}
		if err := e.refData.EnsureWeight(ctx, weight); err != nil {
			return RenderInstruction{}, e.mapStoreErr(s, a.Kind, "ensure weight", err)
		}
	}

	return e.resume(ctx, s, a)
}

func parseReps(text string) (int, error) {
	reps, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || reps <= 0 || reps > refdata.MaxReps {
		return 0, &ValidationError{Message: "Введите целое число повторений больше нуля."}
	}
	return reps, nil
}

// parseWeight accepts both a decimal point and a decimal comma.
func parseWeight(text string) (float64, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	weight, err := strconv.ParseFloat(text, 64)
	if err != nil || weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, &ValidationError{Message: "Введите вес числом, например 6,5."}
	}
	if refdata.RoundWeight(weight) > refdata.MaxWeight {
		return 0, &ValidationError{Message: "Слишком большой вес, максимум " + FormatWeight(refdata.MaxWeight) + " кг."}
	}
	return weight, nil
}

func (e *Engine) openCalendar(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	f, ok := s.Stats()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "not in stats mode"}
	}

	today := e.today()
	f.Month = stats.YearMonth{Year: today.Year(), Month: today.Month()}
	s.State = StateStatsCalendar

	return e.render(ctx, s)
}

func (e *Engine) pickMonth(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	f, ok := s.Stats()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "not in stats mode"}
	}
	f.Month = a.Choice.Month
	return e.render(ctx, s)
}

func (e *Engine) pickDay(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	f, ok := s.Stats()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind, Reason: "not in stats mode"}
	}
	f.Day = a.Choice.Date
	s.State = StateStatsDay
	return e.render(ctx, s)
}

func (e *Engine) openStatsGroups(ctx context.Context, s *Session, _ action) (RenderInstruction, error) {
	s.State = StateStatsGroup
	return e.render(ctx, s)
}

func (e *Engine) back(ctx context.Context, s *Session, a action) (RenderInstruction, error) {
	target, ok := backTargets[s.State]
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind}
	}
	if target == StateMainMenu {
		return e.toMainMenu(ctx, s, a)
	}

	s.State = target
	if f, ok := s.Superset(); ok {
		if h, ok := halfOf(target); ok {
			f.Pending = h
		}
	}

	return e.render(ctx, s)
}

// mapStoreErr turns store failures caused by the user's choice into
// recoverable errors, the rest into StoreError.
func (e *Engine) mapStoreErr(s *Session, kind ActionKind, op string, err error) error {
	switch {
	case errors.Is(err, refdata.ErrEmptyName):
		return &ValidationError{Message: "Пустое название. Отправьте корректный текст."}
	case errors.Is(err, refdata.ErrNameTooLong):
		maxLen := refdata.MaxGroupNameLen
		if s.State == StateAwaitExerciseName {
			maxLen = refdata.MaxExerciseNameLen
		}
		return nameTooLong(maxLen)
	case errors.Is(err, refdata.ErrInvalidValue), pkg.IsValueOutOfRangeError(err):
		return &ValidationError{Message: "Недопустимое значение."}
	case errors.Is(err, refdata.ErrGroupNotFound),
		errors.Is(err, refdata.ErrExerciseNotFound),
		errors.Is(err, sets.ErrUnknownExercise):
		return &SequenceError{State: s.State, Action: kind, Reason: err.Error()}
	}
	return storeErr(op, err)
}

func nameTooLong(maxLen int) *ValidationError {
	return &ValidationError{Message: "Слишком длинное название, максимум " + strconv.Itoa(maxLen) + " символов."}
}
