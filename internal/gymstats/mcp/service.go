package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/stats"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=mcp_test

type statsReader interface {
	Today() time.Time
	MonthCalendar(ctx context.Context, owner int64, year int, month time.Month) (stats.MonthCalendar, error)
	DaySummary(ctx context.Context, owner int64, date time.Time) (*stats.DaySummary, error)
	ExerciseStats(ctx context.Context, owner int64, exerciseID, lookbackDays int) (stats.ExerciseStats, error)
}

type vocabulary interface {
	ListGroups(ctx context.Context) ([]refdata.MuscleGroup, error)
	ListExercises(ctx context.Context, groupID int) ([]refdata.Exercise, error)
	GetExercise(ctx context.Context, id int) (*refdata.Exercise, error)
}

// ExerciseStatsResult is ExerciseStats plus the rendered chat text.
type ExerciseStatsResult struct {
	stats.ExerciseStats
	ExerciseName string `json:"exerciseName"`
	Text         string `json:"text"`
}

// DaySummaryResult is a DaySummary plus the rendered chat text.
type DaySummaryResult struct {
	*stats.DaySummary
	Text string `json:"text"`
}

type GroupExercises struct {
	refdata.MuscleGroup
	Exercises []refdata.Exercise `json:"exercises"`
}

// ContextService gathers read-only gym data for MCP clients.
type ContextService struct {
	schema     SchemaRepo
	stats      statsReader
	vocabulary vocabulary
}

func NewContextService(schemaRepo SchemaRepo, statsService statsReader, vocabularyService vocabulary) *ContextService {
	return &ContextService{
		schema:     schemaRepo,
		stats:      statsService,
		vocabulary: vocabularyService,
	}
}

// GetSchema returns the gym tables as a markdown document.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetGymColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatGymSchema(cols), nil
}

func formatGymSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Gym DB Schema\n\nNo gym tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Gym DB Schema\n\n")
	b.WriteString("Schema: gym. Tables: " + strings.Join(gymTables, ", ") + ".\n")

	for _, tableName := range tableOrder {
		b.WriteString("\n## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|---------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
	}

	return b.String()
}

// ListExercises returns the exercise vocabulary, limited to one group when groupID > 0.
func (s *ContextService) ListExercises(ctx context.Context, groupID int) ([]GroupExercises, error) {
	groups, err := s.vocabulary.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	result := make([]GroupExercises, 0, len(groups))
	for _, g := range groups {
		if groupID > 0 && g.ID != groupID {
			continue
		}
		exercises, err := s.vocabulary.ListExercises(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises of group %d: %w", g.ID, err)
		}
		result = append(result, GroupExercises{MuscleGroup: g, Exercises: exercises})
	}
	if groupID > 0 && len(result) == 0 {
		return nil, refdata.ErrGroupNotFound
	}

	return result, nil
}

// MonthCalendar returns the calendar for the given month, or the current one when year is 0.
func (s *ContextService) MonthCalendar(ctx context.Context, owner int64, year int, month time.Month) (stats.MonthCalendar, error) {
	if year == 0 {
		today := s.stats.Today()
		year, month = today.Year(), today.Month()
	}
	return s.stats.MonthCalendar(ctx, owner, year, month)
}

// DaySummary returns the day summary; a zero date means today.
func (s *ContextService) DaySummary(ctx context.Context, owner int64, date time.Time) (*DaySummaryResult, error) {
	if date.IsZero() {
		date = s.stats.Today()
	}
	summary, err := s.stats.DaySummary(ctx, owner, date)
	if err != nil {
		return nil, err
	}
	return &DaySummaryResult{DaySummary: summary, Text: summary.Text()}, nil
}

func (s *ContextService) ExerciseStats(ctx context.Context, owner int64, exerciseID, lookbackDays int) (*ExerciseStatsResult, error) {
	exercise, err := s.vocabulary.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	st, err := s.stats.ExerciseStats(ctx, owner, exerciseID, lookbackDays)
	if err != nil {
		return nil, err
	}
	return &ExerciseStatsResult{
		ExerciseStats: st,
		ExerciseName:  exercise.Name,
		Text:          st.Text(exercise.Name),
	}, nil
}
