package refdata

import (
	"context"
	"fmt"

	"github.com/2beens/gymbot/internal/telemetry/tracing"
	"github.com/2beens/gymbot/pkg"

	"github.com/jackc/pgx/v5"
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

func (r *Repo) ListGroups(ctx context.Context) (_ []MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.list_groups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM gym.muscle_groups ORDER BY name, id;`)
	if err != nil {
		return nil, fmt.Errorf("groups [query]: %w", err)
	}
	defer rows.Close()

	var groups []MuscleGroup
	for rows.Next() {
		var g MuscleGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("groups [scan]: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("groups [rows]: %w", err)
	}

	return groups, nil
}

func (r *Repo) ListExercises(ctx context.Context, groupID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.list_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("group.id", groupID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, muscle_group_id, name
			FROM gym.exercises
			WHERE muscle_group_id = $1
			ORDER BY name, id;`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.MuscleGroupID, &e.Name); err != nil {
			return nil, fmt.Errorf("exercises [scan]: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows]: %w", err)
	}

	return exercises, nil
}

func (r *Repo) ListReps(ctx context.Context) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.list_reps")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT reps_count FROM gym.repetitions ORDER BY reps_count;`)
	if err != nil {
		return nil, fmt.Errorf("reps [query]: %w", err)
	}
	reps, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("reps [collect]: %w", err)
	}
	return reps, nil
}

func (r *Repo) ListWeights(ctx context.Context) (_ []float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.list_weights")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT weight_kg FROM gym.weights ORDER BY weight_kg;`)
	if err != nil {
		return nil, fmt.Errorf("weights [query]: %w", err)
	}
	weights, err := pgx.CollectRows(rows, pgx.RowTo[float64])
	if err != nil {
		return nil, fmt.Errorf("weights [collect]: %w", err)
	}
	return weights, nil
}

// EnsureGroup returns the id of the group with the given name, creating it when absent.
func (r *Repo) EnsureGroup(ctx context.Context, name string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.ensure_group")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// the no-op update makes RETURNING yield the existing row on conflict
	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO gym.muscle_groups (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id;`,
		name,
	).Scan(&id); err != nil {
		if pkg.IsValueOutOfRangeError(err) {
			return 0, fmt.Errorf("%w: group name: %s", ErrInvalidValue, err)
		}
		return 0, fmt.Errorf("ensure group [%s]: %w", name, err)
	}

	span.SetAttributes(attribute.Int("group.id", id))
	return id, nil
}

func (r *Repo) EnsureExercise(ctx context.Context, groupID int, name string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.ensure_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("group.id", groupID))

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO gym.exercises (muscle_group_id, name) VALUES ($1, $2)
			ON CONFLICT (muscle_group_id, name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id;`,
		groupID, name,
	).Scan(&id); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return 0, ErrGroupNotFound
		}
		if pkg.IsValueOutOfRangeError(err) {
			return 0, fmt.Errorf("%w: exercise name: %s", ErrInvalidValue, err)
		}
		return 0, fmt.Errorf("ensure exercise [%d/%s]: %w", groupID, name, err)
	}

	span.SetAttributes(attribute.Int("exercise.id", id))
	return id, nil
}

func (r *Repo) EnsureReps(ctx context.Context, reps int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.ensure_reps")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO gym.repetitions (reps_count) VALUES ($1) ON CONFLICT DO NOTHING;`,
		reps,
	); err != nil {
		if pkg.IsCheckViolationError(err) || pkg.IsValueOutOfRangeError(err) {
			return ErrInvalidValue
		}
		return fmt.Errorf("ensure reps [%d]: %w", reps, err)
	}
	return nil
}

func (r *Repo) EnsureWeight(ctx context.Context, weight float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.ensure_weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO gym.weights (weight_kg) VALUES ($1) ON CONFLICT DO NOTHING;`,
		weight,
	); err != nil {
		if pkg.IsCheckViolationError(err) || pkg.IsValueOutOfRangeError(err) {
			return ErrInvalidValue
		}
		return fmt.Errorf("ensure weight [%v]: %w", weight, err)
	}
	return nil
}

func (r *Repo) GetGroup(ctx context.Context, id int) (_ *MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.get_group")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("group.id", id))

	g := &MuscleGroup{}
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, name FROM gym.muscle_groups WHERE id = $1;`,
		id,
	).Scan(&g.ID, &g.Name); err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("get group [%d]: %w", id, err)
	}
	return g, nil
}

func (r *Repo) GetExercise(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.get_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", id))

	e := &Exercise{}
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, muscle_group_id, name FROM gym.exercises WHERE id = $1;`,
		id,
	).Scan(&e.ID, &e.MuscleGroupID, &e.Name); err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("get exercise [%d]: %w", id, err)
	}
	return e, nil
}

// FindExercise looks an exercise up by its group and exercise names.
func (r *Repo) FindExercise(ctx context.Context, groupName, name string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.find_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	e := &Exercise{}
	if err := r.db.QueryRow(
		ctx,
		`SELECT e.id, e.muscle_group_id, e.name
			FROM gym.exercises e
			JOIN gym.muscle_groups g ON g.id = e.muscle_group_id
			WHERE g.name = $1 AND e.name = $2;`,
		groupName, name,
	).Scan(&e.ID, &e.MuscleGroupID, &e.Name); err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("find exercise [%s/%s]: %w", groupName, name, err)
	}
	return e, nil
}
