// Package flow is the per-owner recording wizard. An Engine turns inbound
// user actions into session changes, set commits and render instructions.
package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/session"
	"github.com/2beens/gymbot/internal/gymstats/sets"
	"github.com/2beens/gymbot/internal/gymstats/stats"
	"github.com/2beens/gymbot/internal/telemetry/metrics"
	"github.com/2beens/gymbot/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type refData interface {
	ListGroups(ctx context.Context) ([]refdata.MuscleGroup, error)
	ListExercises(ctx context.Context, groupID int) ([]refdata.Exercise, error)
	ListReps(ctx context.Context) ([]int, error)
	ListWeights(ctx context.Context) ([]float64, error)
	EnsureGroup(ctx context.Context, name string) (int, error)
	EnsureExercise(ctx context.Context, groupID int, name string) (int, error)
	EnsureReps(ctx context.Context, reps int) error
	EnsureWeight(ctx context.Context, weight float64) error
}

type setsRepo interface {
	AppendSet(ctx context.Context, set sets.CompletedSet) (*sets.CompletedSet, error)
	AppendSupersetPair(ctx context.Context, pair sets.CompletedSupersetPair) (*sets.CompletedSupersetPair, error)
}

type statsService interface {
	MonthCalendar(ctx context.Context, owner int64, year int, month time.Month) (stats.MonthCalendar, error)
	DaySummary(ctx context.Context, owner int64, date time.Time) (*stats.DaySummary, error)
	ExerciseStats(ctx context.Context, owner int64, exerciseID, lookbackDays int) (stats.ExerciseStats, error)
}

type InputKind int

const (
	InputStart InputKind = iota
	InputSelect
	InputText
)

func (k InputKind) String() string {
	switch k {
	case InputStart:
		return "start"
	case InputSelect:
		return "select"
	case InputText:
		return "text"
	}
	return "unknown"
}

type Input struct {
	Owner int64
	Kind  InputKind
	Token string
	Text  string
}

func StartCommand(owner int64) Input {
	return Input{Owner: owner, Kind: InputStart}
}

func MenuSelect(owner int64, token string) Input {
	return Input{Owner: owner, Kind: InputSelect, Token: token}
}

func FreeText(owner int64, text string) Input {
	return Input{Owner: owner, Kind: InputText, Text: text}
}

type action struct {
	Kind   ActionKind
	Choice Choice
	Text   string
}

type transition func(ctx context.Context, s *Session, a action) (RenderInstruction, error)

type Config struct {
	Location     *time.Location
	LookbackDays int
}

type Engine struct {
	sessions       *session.Store[*Session]
	refData        refData
	sets           setsRepo
	stats          statsService
	metricsManager *metrics.Manager

	loc          *time.Location
	lookbackDays int
	now          func() time.Time

	table         map[State]map[ActionKind]transition
	global        map[ActionKind]transition
	renderByState map[State]func(context.Context, *Session) (RenderInstruction, error)
}

func NewEngine(
	sessions *session.Store[*Session],
	refData refData,
	setsRepo setsRepo,
	statsService statsService,
	cfg Config,
	metricsManager *metrics.Manager,
) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = stats.DefaultLookbackDays
	}

	e := &Engine{
		sessions:       sessions,
		refData:        refData,
		sets:           setsRepo,
		stats:          statsService,
		metricsManager: metricsManager,
		loc:            cfg.Location,
		lookbackDays:   cfg.LookbackDays,
		now:            time.Now,
	}
	e.table = e.decisionTable()
	e.global = map[ActionKind]transition{
		ActionStart:    e.start,
		ActionMainMenu: e.toMainMenu,
	}
	e.renderByState = e.renderers()

	return e
}

// NewSessionStore builds the session store the engine expects.
func NewSessionStore(idleTimeout time.Duration, metricsManager *metrics.Manager) *session.Store[*Session] {
	return session.NewStore(idleTimeout, NewSession, metricsManager)
}

func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) today() time.Time {
	return sets.DateOnly(e.now().In(e.loc))
}

// Session returns a copy of the owner's session.
func (e *Engine) Session(owner int64) Session {
	return *e.sessions.Get(owner).clone()
}

// Handle applies one user action. Recoverable errors come together with a
// render that re-shows the last valid menu; store errors come without a
// render and leave the session as it was.
func (e *Engine) Handle(ctx context.Context, in Input) (render RenderInstruction, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "flow.handle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("owner", in.Owner),
		attribute.String("input", in.Kind.String()),
	)

	start := time.Now()
	defer func() {
		e.observe(in, err, time.Since(start))
	}()

	if in.Kind == InputSelect && in.Token == NoopToken {
		return RenderInstruction{Unchanged: true}, nil
	}

	var recoverable error
	updateErr := e.sessions.Update(in.Owner, func(cur *Session) (*Session, error) {
		s := cur.clone()
		s.owner = in.Owner
		span.SetAttributes(attribute.String("state.from", string(s.State)))

		r, err := e.dispatch(ctx, s, in)
		if err == nil {
			span.SetAttributes(attribute.String("state.to", string(s.State)))
			render = r
			return s, nil
		}
		if !IsRecoverable(err) {
			return nil, err
		}

		// re-render the last valid menu from the untouched session
		recovered := cur.clone()
		recovered.owner = in.Owner
		r, renderErr := e.render(ctx, recovered)
		if renderErr != nil {
			return nil, renderErr
		}
		r.Text = userMessage(err) + "\n\n" + r.Text
		render = r
		recoverable = err
		return recovered, nil
	})
	if updateErr != nil {
		return RenderInstruction{}, updateErr
	}

	render.EditExisting = in.Kind == InputSelect
	return render, recoverable
}

func (e *Engine) observe(in Input, err error, took time.Duration) {
	if e.metricsManager == nil {
		return
	}

	outcome := "ok"
	var seqErr *SequenceError
	var valErr *ValidationError
	switch {
	case err == nil:
	case errors.As(err, &seqErr):
		outcome = "sequence"
	case errors.As(err, &valErr):
		outcome = "validation"
	default:
		outcome = "error"
	}

	e.metricsManager.CounterActions.WithLabelValues(in.Kind.String(), outcome).Inc()
	e.metricsManager.HistogramActionDuration.Observe(took.Seconds())
}

func (e *Engine) dispatch(ctx context.Context, s *Session, in Input) (RenderInstruction, error) {
	var a action
	switch in.Kind {
	case InputStart:
		a.Kind = ActionStart
	case InputText:
		a.Kind = ActionText
		a.Text = in.Text
	case InputSelect:
		c, ok := s.resolve(in.Token)
		if !ok {
			return RenderInstruction{}, &SequenceError{State: s.State, Action: ActionNoop, Reason: fmt.Sprintf("unknown token %q", in.Token)}
		}
		a.Kind = c.Kind
		a.Choice = c
	default:
		return RenderInstruction{}, fmt.Errorf("unknown input kind %d", in.Kind)
	}

	t, ok := e.global[a.Kind]
	if !ok {
		t, ok = e.table[s.State][a.Kind]
	}
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: a.Kind}
	}

	log.Debugf("flow: owner %d, state %s, action %s", in.Owner, s.State, a.Kind)
	return t(ctx, s, a)
}

func userMessage(err error) string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return "⚠️ " + valErr.Message
	}
	var seqErr *SequenceError
	if errors.As(err, &seqErr) && seqErr.Reason == reasonNoGroup {
		return "⚠️ Сначала выберите группу мышц."
	}
	return "⚠️ Это действие сейчас недоступно, выберите вариант из меню."
}
