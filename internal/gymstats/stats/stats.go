package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/sets"
)

var ErrNoData = errors.New("no data")

const DefaultLookbackDays = 30

type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) Add(months int) YearMonth {
	t := ym.First().AddDate(0, months, 0)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

type MonthCalendar struct {
	Year        int          `json:"year"`
	Month       time.Month   `json:"month"`
	DaysInMonth int          `json:"daysInMonth"`
	Active      map[int]bool `json:"active"`
	Prev        YearMonth    `json:"prev"`
	Next        YearMonth    `json:"next"`
	// Weeks is a Monday-first grid, 0 marks a cell outside the month.
	Weeks [][]int `json:"weeks"`
}

func (c MonthCalendar) ActiveDays() []int {
	var days []int
	for d := 1; d <= c.DaysInMonth; d++ {
		if c.Active[d] {
			days = append(days, d)
		}
	}
	return days
}

func newMonthCalendar(ym YearMonth, activeDates []time.Time) MonthCalendar {
	first := ym.First()
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cal := MonthCalendar{
		Year:        ym.Year,
		Month:       ym.Month,
		DaysInMonth: daysInMonth,
		Active:      make(map[int]bool, daysInMonth),
		Prev:        ym.Add(-1),
		Next:        ym.Add(1),
	}
	for d := 1; d <= daysInMonth; d++ {
		cal.Active[d] = false
	}
	for _, date := range activeDates {
		if date.Year() == ym.Year && date.Month() == ym.Month {
			cal.Active[date.Day()] = true
		}
	}

	offset := (int(first.Weekday()) + 6) % 7
	week := make([]int, 7)
	col := offset
	for d := 1; d <= daysInMonth; d++ {
		week[col] = d
		col++
		if col == 7 {
			cal.Weeks = append(cal.Weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		cal.Weeks = append(cal.Weeks, week)
	}

	return cal
}

type SetLine struct {
	SetNumber int      `json:"setNumber"`
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
}

type ExerciseSummary struct {
	GroupName    string    `json:"groupName"`
	ExerciseID   int       `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	Sets         []SetLine `json:"sets"`
}

type DaySummary struct {
	Date      time.Time         `json:"date"`
	Exercises []ExerciseSummary `json:"exercises"`
	Supersets []sets.DayPair    `json:"supersets"`
}

func newDaySummary(date time.Time, entries *sets.DayEntries) DaySummary {
	summary := DaySummary{
		Date:      date,
		Supersets: entries.Pairs,
	}

	type key struct {
		group    string
		exercise string
	}
	index := map[key]int{}
	for _, s := range entries.Sets {
		k := key{group: s.GroupName, exercise: s.ExerciseName}
		i, ok := index[k]
		if !ok {
			i = len(summary.Exercises)
			index[k] = i
			summary.Exercises = append(summary.Exercises, ExerciseSummary{
				GroupName:    s.GroupName,
				ExerciseID:   s.ExerciseID,
				ExerciseName: s.ExerciseName,
			})
		}
		summary.Exercises[i].Sets = append(summary.Exercises[i].Sets, SetLine{
			SetNumber: s.SetNumber,
			Reps:      s.Reps,
			Weight:    s.Weight,
		})
	}

	return summary
}

// Text renders the summary the way it is shown in the chat.
func (s DaySummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Статистика за %s:\n", s.Date.Format("02.01.2006"))

	if len(s.Exercises) > 0 {
		b.WriteString("\nОдиночные упражнения:\n")
		for _, ex := range s.Exercises {
			fmt.Fprintf(&b, "- (%s) %s:\n", ex.GroupName, ex.ExerciseName)
			for _, set := range ex.Sets {
				fmt.Fprintf(&b, "%d) %s\n", set.SetNumber, FormatSet(set.Reps, set.Weight))
			}
			b.WriteString("\n")
		}
	}

	if len(s.Supersets) > 0 {
		b.WriteString("Суперсеты:\n\n")
		for _, p := range s.Supersets {
			fmt.Fprintf(&b, "- Сет %d:\n", p.SetNumber)
			fmt.Fprintf(&b, "1) (%s) %s: %s;\n", p.First.GroupName, p.First.ExerciseName, FormatSet(p.First.Reps, p.First.Weight))
			fmt.Fprintf(&b, "2) (%s) %s: %s\n", p.Second.GroupName, p.Second.ExerciseName, FormatSet(p.Second.Reps, p.Second.Weight))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatWeight prints a weight with a decimal comma, "нет" when absent.
func FormatWeight(weight *float64) string {
	if weight == nil {
		return "нет"
	}
	return strings.ReplaceAll(strconv.FormatFloat(*weight, 'g', -1, 64), ".", ",")
}

func FormatSet(reps int, weight *float64) string {
	return fmt.Sprintf("%d × %s кг", reps, FormatWeight(weight))
}

type ExerciseStats struct {
	ExerciseID   int     `json:"exerciseId"`
	LookbackDays int     `json:"lookbackDays"`
	Count        int     `json:"count"`
	AvgReps      float64 `json:"avgReps"`
	AvgWeight    float64 `json:"avgWeight"`
}

func newExerciseStats(exerciseID, lookbackDays int, records []sets.ExerciseSetRecord) ExerciseStats {
	st := ExerciseStats{
		ExerciseID:   exerciseID,
		LookbackDays: lookbackDays,
		Count:        len(records),
	}
	if st.Count == 0 {
		return st
	}

	var repsSum, weightSum float64
	for _, rec := range records {
		repsSum += float64(rec.Reps)
		// bodyweight sets count as zero
		if rec.Weight != nil {
			weightSum += *rec.Weight
		}
	}
	st.AvgReps = round2(repsSum / float64(st.Count))
	st.AvgWeight = round2(weightSum / float64(st.Count))

	return st
}

func (s ExerciseStats) Text(exerciseName string) string {
	return fmt.Sprintf(
		"Статистика за %d дней по: %s\nПодходов: %d\nСредние повторы: %s\nСредний вес: %s кг",
		s.LookbackDays,
		exerciseName,
		s.Count,
		strconv.FormatFloat(s.AvgReps, 'f', -1, 64),
		strconv.FormatFloat(s.AvgWeight, 'f', -1, 64),
	)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
