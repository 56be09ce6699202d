//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/flow"
	gymstatsmcp "github.com/2beens/gymbot/internal/gymstats/mcp"
	"github.com/2beens/gymbot/internal/gymstats/stats"
	"github.com/2beens/gymbot/internal/middleware"
	"github.com/2beens/gymbot/internal/telegram"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func (s *IntegrationTestSuite) newOwner() int64 {
	return int64(gofakeit.Number(1_000_000, 999_999_999))
}

// seedExercise ensures a fresh group with one exercise and returns their names.
func (s *IntegrationTestSuite) seedExercise(ctx context.Context) (string, string, int) {
	group := "Group " + gofakeit.LetterN(8)
	exercise := "Exercise " + gofakeit.LetterN(8)

	groupID, err := s.refService.EnsureGroup(ctx, group)
	s.Require().NoError(err)
	exerciseID, err := s.refService.EnsureExercise(ctx, groupID, exercise)
	s.Require().NoError(err)

	return group, exercise, exerciseID
}

func (s *IntegrationTestSuite) handle(in flow.Input) flow.RenderInstruction {
	r, err := s.engine.Handle(context.Background(), in)
	s.Require().NoError(err)
	return r
}

func (s *IntegrationTestSuite) tap(owner int64, r flow.RenderInstruction, label string) flow.RenderInstruction {
	for _, row := range r.Menu {
		for _, b := range row {
			if b.Label == label {
				return s.handle(flow.MenuSelect(owner, b.Token))
			}
		}
	}
	s.FailNowf("button not found", "no %q in menu %q", label, r.Text)
	return flow.RenderInstruction{}
}

func (s *IntegrationTestSuite) apiGet(path string, authenticated bool) *http.Response {
	req, err := http.NewRequest(http.MethodGet, s.apiServer.URL+path, nil)
	s.Require().NoError(err)
	if authenticated {
		req.Header.Set(middleware.AuthTokenHeader, testAPIToken)
	}
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *IntegrationTestSuite) TestEnsureIsIdempotent() {
	ctx := context.Background()
	name := "Group " + gofakeit.LetterN(8)

	id1, err := s.refService.EnsureGroup(ctx, name)
	s.Require().NoError(err)
	id2, err := s.refService.EnsureGroup(ctx, "  "+name+" ")
	s.Require().NoError(err)
	s.Equal(id1, id2)

	s.Equal(1, s.countRows("SELECT COUNT(*) FROM gym.muscle_groups WHERE name = $1", name))

	s.Require().NoError(s.refService.EnsureWeight(ctx, 61.257))
	s.Require().NoError(s.refService.EnsureWeight(ctx, 61.26))
	s.Equal(1, s.countRows("SELECT COUNT(*) FROM gym.weights WHERE weight_kg = 61.26"))

	weights, err := s.refService.ListWeights(ctx)
	s.Require().NoError(err)
	s.Contains(weights, 61.26)
}

func (s *IntegrationTestSuite) TestSingleFlowPersistsAndAggregates() {
	owner := s.newOwner()
	group, exercise, exerciseID := s.seedExercise(context.Background())

	r := s.handle(flow.StartCommand(owner))
	s.Equal("Выберите режим:", r.Text)
	r = s.tap(owner, r, "🏋️‍♂️ Одиночное упражнение")
	r = s.tap(owner, r, group)
	r = s.tap(owner, r, exercise)
	r = s.tap(owner, r, "10")
	r = s.tap(owner, r, "60")
	s.Equal("Подход 1 сохранён: 10 повторений, вес: 60 кг", r.Text)

	r = s.tap(owner, r, "➕ Ещё подход")
	r = s.tap(owner, r, "8")
	r = s.tap(owner, r, "⚪ Без веса")
	s.Equal("Подход 2 сохранён: 8 повторений, вес: нет кг", r.Text)
	r = s.tap(owner, r, "🏁 Закончить")
	s.Equal(flow.StateMainMenu, s.engine.Session(owner).State)

	s.Equal(2, s.countRows("SELECT COUNT(*) FROM gym.workout_stats WHERE chat_id = $1", owner))
	s.Equal(1, s.countRows("SELECT COUNT(*) FROM gym.workout_stats WHERE chat_id = $1 AND weight_kg IS NULL", owner))
	s.GreaterOrEqual(testutil.ToFloat64(s.metrics.CounterSetsSaved), 2.0)

	today := s.statsService.Today()

	resp := s.apiGet(fmt.Sprintf("/gymstats/%d/day/%s", owner, today.Format(time.DateOnly)), true)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var summary stats.DaySummary
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&summary))
	s.Require().Len(summary.Exercises, 1)
	s.Equal(exercise, summary.Exercises[0].ExerciseName)

	statsResp := s.apiGet(fmt.Sprintf("/gymstats/%d/exercise/%d/stats", owner, exerciseID), true)
	defer statsResp.Body.Close()
	s.Require().Equal(http.StatusOK, statsResp.StatusCode)
	var exerciseStats stats.ExerciseStats
	s.Require().NoError(json.NewDecoder(statsResp.Body).Decode(&exerciseStats))
	s.Equal(2, exerciseStats.Count)
	s.Equal(9.0, exerciseStats.AvgReps)
	s.Equal(30.0, exerciseStats.AvgWeight)

	calResp := s.apiGet(fmt.Sprintf("/gymstats/%d/calendar/%d/%d", owner, today.Year(), today.Month()), true)
	defer calResp.Body.Close()
	s.Require().Equal(http.StatusOK, calResp.StatusCode)
	var cal stats.MonthCalendar
	s.Require().NoError(json.NewDecoder(calResp.Body).Decode(&cal))
	s.Equal([]int{today.Day()}, cal.ActiveDays())
}

func (s *IntegrationTestSuite) TestSupersetFlowPersistsPair() {
	owner := s.newOwner()
	ctx := context.Background()
	group, first, _ := s.seedExercise(ctx)
	groupID, err := s.refService.EnsureGroup(ctx, group)
	s.Require().NoError(err)
	second := "Exercise " + gofakeit.LetterN(8)
	_, err = s.refService.EnsureExercise(ctx, groupID, second)
	s.Require().NoError(err)

	r := s.handle(flow.StartCommand(owner))
	r = s.tap(owner, r, "🔥 Суперсет")
	r = s.tap(owner, r, group)
	r = s.tap(owner, r, first)
	r = s.tap(owner, r, group)
	r = s.tap(owner, r, second)
	r = s.tap(owner, r, "12")
	r = s.tap(owner, r, "20")
	s.Equal(0, s.countRows("SELECT COUNT(*) FROM gym.supersets WHERE chat_id = $1", owner))

	r = s.tap(owner, r, "10")
	s.tap(owner, r, "⚪ Без веса")

	s.Equal(1, s.countRows("SELECT COUNT(*) FROM gym.supersets WHERE chat_id = $1", owner))
	s.Equal(1, s.countRows(
		"SELECT COUNT(*) FROM gym.supersets WHERE chat_id = $1 AND first_reps = 12 AND first_weight_kg = 20 AND second_reps = 10 AND second_weight_kg IS NULL",
		owner,
	))

	summary, err := s.statsService.DaySummary(ctx, owner, s.statsService.Today())
	s.Require().NoError(err)
	s.Require().Len(summary.Supersets, 1)
	s.Equal(first, summary.Supersets[0].First.ExerciseName)
	s.Equal(second, summary.Supersets[0].Second.ExerciseName)
}

func (s *IntegrationTestSuite) TestAddRepsFromFreeText() {
	owner := s.newOwner()
	group, exercise, _ := s.seedExercise(context.Background())

	r := s.handle(flow.StartCommand(owner))
	r = s.tap(owner, r, "🏋️‍♂️ Одиночное упражнение")
	r = s.tap(owner, r, group)
	r = s.tap(owner, r, exercise)
	s.tap(owner, r, "➕")
	s.Equal(flow.StateAddReps, s.engine.Session(owner).State)

	r = s.handle(flow.FreeText(owner, "33"))
	s.Equal(flow.StateChooseReps, s.engine.Session(owner).State)
	s.Equal(1, s.countRows("SELECT COUNT(*) FROM gym.repetitions WHERE reps_count = 33"))

	r = s.tap(owner, r, "33")
	s.Equal("Подход 1: выберите вес (кг):", r.Text)
}

func (s *IntegrationTestSuite) TestDayWithoutSets() {
	owner := s.newOwner()

	resp := s.apiGet(fmt.Sprintf("/gymstats/%d/day/2020-01-01", owner), true)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)

	unauthorized := s.apiGet(fmt.Sprintf("/gymstats/%d/day/2020-01-01", owner), false)
	defer unauthorized.Body.Close()
	s.Equal(http.StatusUnauthorized, unauthorized.StatusCode)
}

func (s *IntegrationTestSuite) TestSchemaColumns() {
	columns, err := gymstatsmcp.NewPoolSchemaRepo(s.dbPool).GetGymColumns(context.Background())
	s.Require().NoError(err)

	tables := map[string]bool{}
	for _, c := range columns {
		s.Equal("gym", c.TableSchema)
		tables[c.TableName] = true
	}
	for _, table := range []string{"muscle_groups", "exercises", "repetitions", "weights", "workout_stats", "supersets"} {
		s.True(tables[table], "missing table %s", table)
	}
}

func (s *IntegrationTestSuite) TestUpdateDeduplication() {
	ctx := context.Background()
	dedup := telegram.NewDeduplicator(s.redisClient)
	updateID := gofakeit.Number(1, 1_000_000_000)

	first, err := dedup.FirstSeen(ctx, updateID)
	s.Require().NoError(err)
	s.True(first)

	again, err := dedup.FirstSeen(ctx, updateID)
	s.Require().NoError(err)
	s.False(again)
}
