package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/stats"

	"github.com/mark3labs/mcp-go/mcp"
	log "github.com/sirupsen/logrus"
)

// contextService is what the tool handlers need from ContextService.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ListExercises(ctx context.Context, groupID int) ([]GroupExercises, error)
	MonthCalendar(ctx context.Context, owner int64, year int, month time.Month) (stats.MonthCalendar, error)
	DaySummary(ctx context.Context, owner int64, date time.Time) (*DaySummaryResult, error)
	ExerciseStats(ctx context.Context, owner int64, exerciseID, lookbackDays int) (*ExerciseStatsResult, error)
}

type Handler struct {
	svc contextService
}

func NewHandler(svc contextService) *Handler {
	return &Handler{svc: svc}
}

var toolGetGymSchema = mcp.NewTool("get_gym_schema",
	mcp.WithDescription("Returns the DB schema of the gym tables (muscle groups, exercises, reps and weights vocabularies, logged sets and superset pairs): columns, types, nullable, default."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("Lists muscle groups with their exercises. Exercise ids are needed by get_exercise_stats."),
	mcp.WithNumber("group_id", mcp.Description("Only return this muscle group.")),
)

var toolGetMonthCalendar = mcp.NewTool("get_month_calendar",
	mcp.WithDescription("Returns a Monday-first month grid with the days that have at least one logged set or superset pair."),
	mcp.WithNumber("owner", mcp.Required(), mcp.Description("Telegram chat id of the athlete")),
	mcp.WithNumber("year", mcp.Description("Calendar year. Defaults to the current month.")),
	mcp.WithNumber("month", mcp.Description("Month 1-12. Required when year is set."), mcp.Min(1), mcp.Max(12)),
)

var toolGetDaySummary = mcp.NewTool("get_day_summary",
	mcp.WithDescription("Returns every set and superset pair logged on a day, grouped by exercise, plus the chat rendering."),
	mcp.WithNumber("owner", mcp.Required(), mcp.Description("Telegram chat id of the athlete")),
	mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD. Defaults to today.")),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Returns the number of sets, average reps and average weight for one exercise over the last N days. Sets logged without weight count as 0 kg."),
	mcp.WithNumber("owner", mcp.Required(), mcp.Description("Telegram chat id of the athlete")),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise id, see list_exercises")),
	mcp.WithNumber("days", mcp.Description("Lookback window in days. Defaults to 30.")),
)

func (h *Handler) GetGymSchema(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schema, err := h.svc.GetSchema(ctx)
	if err != nil {
		log.Errorf("mcp get_gym_schema: %s", err)
		return mcp.NewToolResultError("Error fetching schema: " + err.Error()), nil
	}
	return mcp.NewToolResultText(schema), nil
}

func (h *Handler) ListExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID := req.GetInt("group_id", 0)
	groups, err := h.svc.ListExercises(ctx, groupID)
	if errors.Is(err, refdata.ErrGroupNotFound) {
		return mcp.NewToolResultError("muscle group not found"), nil
	}
	if err != nil {
		log.Errorf("mcp list_exercises: %s", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(groups)
}

func (h *Handler) GetMonthCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, err := requireOwner(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	year := req.GetInt("year", 0)
	month := req.GetInt("month", 0)
	if year != 0 && (month < 1 || month > 12) {
		return mcp.NewToolResultError("month must be between 1 and 12"), nil
	}

	cal, err := h.svc.MonthCalendar(ctx, owner, year, time.Month(month))
	if err != nil {
		log.Errorf("mcp get_month_calendar for %d: %s", owner, err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(cal)
}

func (h *Handler) GetDaySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, err := requireOwner(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var date time.Time
	if dateStr := req.GetString("date", ""); dateStr != "" {
		date, err = time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return mcp.NewToolResultError("invalid date, expected YYYY-MM-DD"), nil
		}
	}

	summary, err := h.svc.DaySummary(ctx, owner, date)
	if errors.Is(err, stats.ErrNoData) {
		return mcp.NewToolResultText("No sets logged on that day."), nil
	}
	if err != nil {
		log.Errorf("mcp get_day_summary for %d: %s", owner, err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(summary)
}

func (h *Handler) GetExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, err := requireOwner(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	exerciseID, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	days := req.GetInt("days", stats.DefaultLookbackDays)

	result, err := h.svc.ExerciseStats(ctx, owner, exerciseID, days)
	if errors.Is(err, refdata.ErrExerciseNotFound) {
		return mcp.NewToolResultError("exercise not found"), nil
	}
	if err != nil {
		log.Errorf("mcp get_exercise_stats for %d: %s", owner, err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(result)
}

func requireOwner(req mcp.CallToolRequest) (int64, error) {
	owner, err := req.RequireInt("owner")
	if err != nil {
		return 0, errors.New("owner parameter is required")
	}
	return int64(owner), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
