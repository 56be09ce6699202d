package stats

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymbot/internal/telemetry/tracing"
	"github.com/2beens/gymbot/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/{owner}/calendar/{year}/{month}", handler.HandleMonthCalendar).Methods("GET", "OPTIONS").Name("gymstats-calendar")
	router.HandleFunc("/{owner}/day/{date}", handler.HandleDaySummary).Methods("GET", "OPTIONS").Name("gymstats-day")
	router.HandleFunc("/{owner}/exercise/{id}/stats", handler.HandleExerciseStats).Methods("GET", "OPTIONS").Name("gymstats-exercise-stats")
}

func (handler *Handler) HandleMonthCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.calendar")
	defer span.End()

	vars := mux.Vars(r)
	owner, err := strconv.ParseInt(vars["owner"], 10, 64)
	if err != nil {
		http.Error(w, "invalid owner", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	cal, err := handler.service.MonthCalendar(ctx, owner, year, time.Month(month))
	if err != nil {
		log.Errorf("get month calendar for %d: %s", owner, err)
		http.Error(w, "failed to get calendar", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, cal, http.StatusOK)
}

func (handler *Handler) HandleDaySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.day")
	defer span.End()

	vars := mux.Vars(r)
	owner, err := strconv.ParseInt(vars["owner"], 10, 64)
	if err != nil {
		http.Error(w, "invalid owner", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(time.DateOnly, vars["date"])
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	summary, err := handler.service.DaySummary(ctx, owner, date)
	if errors.Is(err, ErrNoData) {
		pkg.WriteText(w, "no data for the given day", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get day summary for %d: %s", owner, err)
		http.Error(w, "failed to get day summary", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (handler *Handler) HandleExerciseStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercise_stats")
	defer span.End()

	vars := mux.Vars(r)
	owner, err := strconv.ParseInt(vars["owner"], 10, 64)
	if err != nil {
		http.Error(w, "invalid owner", http.StatusBadRequest)
		return
	}
	exerciseID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	days := DefaultLookbackDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			http.Error(w, "invalid days parameter (must be positive integer)", http.StatusBadRequest)
			return
		}
	}

	st, err := handler.service.ExerciseStats(ctx, owner, exerciseID, days)
	if err != nil {
		log.Errorf("get exercise %d stats for %d: %s", exerciseID, owner, err)
		http.Error(w, "failed to get exercise stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, st, http.StatusOK)
}
