package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/sets"
	"github.com/2beens/gymbot/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type setsRepo interface {
	ListActivityDates(ctx context.Context, owner int64, from, to time.Time) ([]time.Time, error)
	ListForDay(ctx context.Context, owner int64, date time.Time) (*sets.DayEntries, error)
	ListForExerciseSince(ctx context.Context, owner int64, exerciseID int, since time.Time) ([]sets.ExerciseSetRecord, error)
}

// Service answers the read-side questions about recorded training:
// which days of a month had activity, what was done on a day and
// how an exercise went over the last weeks.
type Service struct {
	repo setsRepo
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo setsRepo, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today is the current calendar date in the service location.
func (s *Service) Today() time.Time {
	return sets.DateOnly(s.now().In(s.loc))
}

func (s *Service) MonthCalendar(ctx context.Context, owner int64, year int, month time.Month) (_ MonthCalendar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.month_calendar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("owner", owner),
		attribute.Int("year", year),
		attribute.Int("month", int(month)),
	)

	if month < time.January || month > time.December {
		return MonthCalendar{}, fmt.Errorf("invalid month: %d", month)
	}

	ym := YearMonth{Year: year, Month: month}
	dates, err := s.repo.ListActivityDates(ctx, owner, ym.First(), ym.Add(1).First())
	if err != nil {
		return MonthCalendar{}, fmt.Errorf("list activity dates: %w", err)
	}

	return newMonthCalendar(ym, dates), nil
}

func (s *Service) DaySummary(ctx context.Context, owner int64, date time.Time) (_ *DaySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.day_summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("owner", owner))

	date = sets.DateOnly(date)
	entries, err := s.repo.ListForDay(ctx, owner, date)
	if err != nil {
		return nil, fmt.Errorf("list for day: %w", err)
	}
	if entries == nil || entries.Empty() {
		return nil, ErrNoData
	}

	summary := newDaySummary(date, entries)
	return &summary, nil
}

func (s *Service) ExerciseStats(ctx context.Context, owner int64, exerciseID, lookbackDays int) (_ ExerciseStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.exercise_stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("owner", owner),
		attribute.Int("exercise.id", exerciseID),
	)

	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	since := s.Today().AddDate(0, 0, -lookbackDays)
	records, err := s.repo.ListForExerciseSince(ctx, owner, exerciseID, since)
	if err != nil {
		return ExerciseStats{}, fmt.Errorf("list for exercise: %w", err)
	}

	return newExerciseStats(exerciseID, lookbackDays, records), nil
}
