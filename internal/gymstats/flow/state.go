package flow

import "strconv"

type State string

const (
	StateMainMenu State = "MAIN_MENU"

	StateChooseGroup    State = "CHOOSE_GROUP"
	StateChooseExercise State = "CHOOSE_EXERCISE"
	StateChooseReps     State = "CHOOSE_REPS"
	StateChooseWeight   State = "CHOOSE_WEIGHT"
	StateSetSaved       State = "SET_SAVED"

	StateChooseGroup1    State = "CHOOSE_GROUP_1"
	StateChooseExercise1 State = "CHOOSE_EXERCISE_1"
	StateChooseGroup2    State = "CHOOSE_GROUP_2"
	StateChooseExercise2 State = "CHOOSE_EXERCISE_2"
	StateChooseReps1     State = "CHOOSE_REPS_1"
	StateChooseWeight1   State = "CHOOSE_WEIGHT_1"
	StateChooseReps2     State = "CHOOSE_REPS_2"
	StateChooseWeight2   State = "CHOOSE_WEIGHT_2"
	StatePairSaved       State = "PAIR_SAVED"

	StateAwaitGroupName    State = "AWAIT_GROUP_NAME"
	StateAwaitExerciseName State = "AWAIT_EXERCISE_NAME"
	StateAddReps           State = "ADD_REPS"
	StateAddWeight         State = "ADD_WEIGHT"

	StateStatsMenu     State = "STATS_MENU"
	StateStatsCalendar State = "STATS_CALENDAR"
	StateStatsDay      State = "STATS_DAY"
	StateStatsGroup    State = "STATS_GROUP"
	StateStatsExercise State = "STATS_EXERCISE"
	StateStatsResult   State = "STATS_RESULT"
)

// Half tells which exercise of a superset a step belongs to.
type Half int

const (
	HalfFirst Half = iota
	HalfSecond
)

func (h Half) String() string {
	if h == HalfSecond {
		return "second"
	}
	return "first"
}

// halfOf reports the superset half a state belongs to, if any.
func halfOf(state State) (Half, bool) {
	switch state {
	case StateChooseGroup1, StateChooseExercise1, StateChooseReps1, StateChooseWeight1:
		return HalfFirst, true
	case StateChooseGroup2, StateChooseExercise2, StateChooseReps2, StateChooseWeight2:
		return HalfSecond, true
	}
	return HalfFirst, false
}

type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionText
	ActionMainMenu
	ActionSingle
	ActionSuperset
	ActionStats
	ActionGroup
	ActionExercise
	ActionReps
	ActionWeight
	ActionNoWeight
	ActionAddGroup
	ActionAddExercise
	ActionAddReps
	ActionAddWeight
	ActionAddValue
	ActionNextSet
	ActionBack
	ActionStatsDay
	ActionStatsExercise
	ActionMonth
	ActionDay
	ActionNoop
)

var actionKindNames = [...]string{
	ActionStart:         "start",
	ActionText:          "text",
	ActionMainMenu:      "main_menu",
	ActionSingle:        "single",
	ActionSuperset:      "superset",
	ActionStats:         "stats",
	ActionGroup:         "group",
	ActionExercise:      "exercise",
	ActionReps:          "reps",
	ActionWeight:        "weight",
	ActionNoWeight:      "no_weight",
	ActionAddGroup:      "add_group",
	ActionAddExercise:   "add_exercise",
	ActionAddReps:       "add_reps",
	ActionAddWeight:     "add_weight",
	ActionAddValue:      "add_value",
	ActionNextSet:       "next_set",
	ActionBack:          "back",
	ActionStatsDay:      "stats_day",
	ActionStatsExercise: "stats_exercise",
	ActionMonth:         "month",
	ActionDay:           "day",
	ActionNoop:          "noop",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionKindNames) {
		return "action(" + strconv.Itoa(int(k)) + ")"
	}
	return actionKindNames[k]
}

// MenuKind identifies a family of keyboards. Its letter prefixes every
// token rendered in a keyboard of that kind.
type MenuKind byte

const (
	MenuMain      MenuKind = 'm'
	MenuGroups    MenuKind = 'g'
	MenuExercises MenuKind = 'e'
	MenuReps      MenuKind = 'r'
	MenuWeights   MenuKind = 'w'
	MenuAddValue  MenuKind = 'a'
	MenuPrompt    MenuKind = 'p'
	MenuSaved     MenuKind = 's'
	MenuStats     MenuKind = 't'
	MenuCalendar  MenuKind = 'c'
	MenuDay       MenuKind = 'd'
	MenuResult    MenuKind = 'x'
)
