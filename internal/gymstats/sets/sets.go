// Package sets stores completed single exercise sets and superset pairs.
// Rows are append-only.
package sets

import (
	"errors"
	"time"
)

var ErrUnknownExercise = errors.New("unknown exercise")

type CompletedSet struct {
	ID         int       `json:"id"`
	Owner      int64     `json:"owner"`
	Date       time.Time `json:"date"`
	ExerciseID int       `json:"exerciseId"`
	SetNumber  int       `json:"setNumber"`
	Reps       int       `json:"reps"`
	Weight     *float64  `json:"weight,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CompletedSupersetPair struct {
	ID               int       `json:"id"`
	Owner            int64     `json:"owner"`
	Date             time.Time `json:"date"`
	FirstExerciseID  int       `json:"firstExerciseId"`
	SecondExerciseID int       `json:"secondExerciseId"`
	SetNumber        int       `json:"setNumber"`
	FirstReps        int       `json:"firstReps"`
	FirstWeight      *float64  `json:"firstWeight,omitempty"`
	SecondReps       int       `json:"secondReps"`
	SecondWeight     *float64  `json:"secondWeight,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// DaySet is a single set joined with its exercise and group names.
type DaySet struct {
	GroupName    string    `json:"groupName"`
	ExerciseID   int       `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	SetNumber    int       `json:"setNumber"`
	Reps         int       `json:"reps"`
	Weight       *float64  `json:"weight,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PairHalf struct {
	GroupName    string   `json:"groupName"`
	ExerciseID   int      `json:"exerciseId"`
	ExerciseName string   `json:"exerciseName"`
	Reps         int      `json:"reps"`
	Weight       *float64 `json:"weight,omitempty"`
}

type DayPair struct {
	SetNumber int       `json:"setNumber"`
	First     PairHalf  `json:"first"`
	Second    PairHalf  `json:"second"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayEntries is everything recorded by one owner on one date,
// both slices ordered by creation time.
type DayEntries struct {
	Sets  []DaySet  `json:"sets"`
	Pairs []DayPair `json:"pairs"`
}

func (d DayEntries) Empty() bool {
	return len(d.Sets) == 0 && len(d.Pairs) == 0
}

type ExerciseSetRecord struct {
	Date      time.Time `json:"date"`
	SetNumber int       `json:"setNumber"`
	Reps      int       `json:"reps"`
	Weight    *float64  `json:"weight,omitempty"`
}

// DateOnly strips the clock part, keeping the calendar date as seen in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
