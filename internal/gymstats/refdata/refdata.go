// Package refdata holds the grow-only vocabularies offered as menu choices:
// muscle groups, exercises, rep counts and weights.
package refdata

import (
	"errors"
	"math"
	"strings"
)

// Column limits of the gym schema.
const (
	MaxGroupNameLen    = 100
	MaxExerciseNameLen = 200
	MaxReps            = math.MaxInt32
	MaxWeight          = 9999.99
)

var (
	ErrGroupNotFound    = errors.New("muscle group not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrEmptyName        = errors.New("name is empty")
	ErrNameTooLong      = errors.New("name is too long")
	ErrInvalidValue     = errors.New("invalid value")
)

type MuscleGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Exercise struct {
	ID            int    `json:"id"`
	MuscleGroupID int    `json:"muscleGroupId"`
	Name          string `json:"name"`
}

// NormalizeName trims the user supplied name and collapses inner whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
