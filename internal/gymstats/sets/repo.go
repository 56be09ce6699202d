package sets

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymbot/internal/telemetry/tracing"
	"github.com/2beens/gymbot/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AppendSet(ctx context.Context, set CompletedSet) (_ *CompletedSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.append_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("owner", set.Owner),
		attribute.Int("exercise.id", set.ExerciseID),
		attribute.Int("set.number", set.SetNumber),
	)

	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now()
	}
	set.Date = DateOnly(set.Date)

	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO gym.workout_stats
				(chat_id, date, exercise_id, set_number, weight_kg, reps_count, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		set.Owner, set.Date, set.ExerciseID, set.SetNumber, set.Weight, set.Reps, set.CreatedAt,
	).Scan(&set.ID); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownExercise, set.ExerciseID)
		}
		return nil, fmt.Errorf("append set [insert]: %w", err)
	}

	span.SetAttributes(attribute.Int("set.id", set.ID))
	return &set, nil
}

func (r *Repo) AppendSupersetPair(ctx context.Context, pair CompletedSupersetPair) (_ *CompletedSupersetPair, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.append_superset_pair")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("owner", pair.Owner),
		attribute.Int("exercise.first", pair.FirstExerciseID),
		attribute.Int("exercise.second", pair.SecondExerciseID),
		attribute.Int("set.number", pair.SetNumber),
	)

	if pair.CreatedAt.IsZero() {
		pair.CreatedAt = time.Now()
	}
	pair.Date = DateOnly(pair.Date)

	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO gym.supersets
				(chat_id, date, first_exercise_id, second_exercise_id, set_number,
				 first_weight_kg, first_reps_count, second_weight_kg, second_reps_count, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id;`,
		pair.Owner, pair.Date, pair.FirstExerciseID, pair.SecondExerciseID, pair.SetNumber,
		pair.FirstWeight, pair.FirstReps, pair.SecondWeight, pair.SecondReps, pair.CreatedAt,
	).Scan(&pair.ID); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %d/%d", ErrUnknownExercise, pair.FirstExerciseID, pair.SecondExerciseID)
		}
		return nil, fmt.Errorf("append superset pair [insert]: %w", err)
	}

	span.SetAttributes(attribute.Int("pair.id", pair.ID))
	return &pair, nil
}

// ListActivityDates returns the distinct dates in [from, to) with at least one
// set or superset pair recorded, ascending.
func (r *Repo) ListActivityDates(ctx context.Context, owner int64, from, to time.Time) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_activity_dates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("owner", owner))

	rows, err := r.db.Query(
		ctx,
		`SELECT date FROM gym.workout_stats
				WHERE chat_id = $1 AND date >= $2 AND date < $3
			UNION
			SELECT date FROM gym.supersets
				WHERE chat_id = $1 AND date >= $2 AND date < $3
			ORDER BY date;`,
		owner, DateOnly(from), DateOnly(to),
	)
	if err != nil {
		return nil, fmt.Errorf("activity dates [query]: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("activity dates [scan]: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity dates [rows]: %w", err)
	}

	return dates, nil
}

func (r *Repo) ListForDay(ctx context.Context, owner int64, date time.Time) (_ *DayEntries, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_for_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("owner", owner))

	date = DateOnly(date)
	entries := &DayEntries{}

	setRows, err := r.db.Query(
		ctx,
		`SELECT g.name, e.id, e.name, w.set_number, w.reps_count, w.weight_kg, w.created_at
			FROM gym.workout_stats w
			JOIN gym.exercises e ON e.id = w.exercise_id
			JOIN gym.muscle_groups g ON g.id = e.muscle_group_id
			WHERE w.chat_id = $1 AND w.date = $2
			ORDER BY w.created_at, w.id;`,
		owner, date,
	)
	if err != nil {
		return nil, fmt.Errorf("day sets [query]: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s DaySet
		if err := setRows.Scan(
			&s.GroupName, &s.ExerciseID, &s.ExerciseName,
			&s.SetNumber, &s.Reps, &s.Weight, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("day sets [scan]: %w", err)
		}
		entries.Sets = append(entries.Sets, s)
	}
	if err := setRows.Err(); err != nil {
		return nil, fmt.Errorf("day sets [rows]: %w", err)
	}
	setRows.Close()

	pairRows, err := r.db.Query(
		ctx,
		`SELECT s.set_number,
				g1.name, e1.id, e1.name, s.first_reps_count, s.first_weight_kg,
				g2.name, e2.id, e2.name, s.second_reps_count, s.second_weight_kg,
				s.created_at
			FROM gym.supersets s
			JOIN gym.exercises e1 ON e1.id = s.first_exercise_id
			JOIN gym.muscle_groups g1 ON g1.id = e1.muscle_group_id
			JOIN gym.exercises e2 ON e2.id = s.second_exercise_id
			JOIN gym.muscle_groups g2 ON g2.id = e2.muscle_group_id
			WHERE s.chat_id = $1 AND s.date = $2
			ORDER BY s.created_at, s.id;`,
		owner, date,
	)
	if err != nil {
		return nil, fmt.Errorf("day pairs [query]: %w", err)
	}
	defer pairRows.Close()

	for pairRows.Next() {
		var p DayPair
		if err := pairRows.Scan(
			&p.SetNumber,
			&p.First.GroupName, &p.First.ExerciseID, &p.First.ExerciseName, &p.First.Reps, &p.First.Weight,
			&p.Second.GroupName, &p.Second.ExerciseID, &p.Second.ExerciseName, &p.Second.Reps, &p.Second.Weight,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("day pairs [scan]: %w", err)
		}
		entries.Pairs = append(entries.Pairs, p)
	}
	if err := pairRows.Err(); err != nil {
		return nil, fmt.Errorf("day pairs [rows]: %w", err)
	}

	span.SetAttributes(
		attribute.Int("sets.count", len(entries.Sets)),
		attribute.Int("pairs.count", len(entries.Pairs)),
	)
	return entries, nil
}

// ListForExerciseSince returns the single sets of an exercise recorded on or after since,
// ordered by date and set number. Superset halves are not included.
func (r *Repo) ListForExerciseSince(ctx context.Context, owner int64, exerciseID int, since time.Time) (_ []ExerciseSetRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_for_exercise_since")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("owner", owner),
		attribute.Int("exercise.id", exerciseID),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT date, set_number, reps_count, weight_kg
			FROM gym.workout_stats
			WHERE chat_id = $1 AND exercise_id = $2 AND date >= $3
			ORDER BY date, set_number, id;`,
		owner, exerciseID, DateOnly(since),
	)
	if err != nil {
		return nil, fmt.Errorf("exercise sets [query]: %w", err)
	}
	defer rows.Close()

	var records []ExerciseSetRecord
	for rows.Next() {
		var rec ExerciseSetRecord
		if err := rows.Scan(&rec.Date, &rec.SetNumber, &rec.Reps, &rec.Weight); err != nil {
			return nil, fmt.Errorf("exercise sets [scan]: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercise sets [rows]: %w", err)
	}

	return records, nil
}
