package flow

func (e *Engine) decisionTable() map[State]map[ActionKind]transition {
	groupMenu := map[ActionKind]transition{
		ActionGroup:    e.pickGroup,
		ActionAddGroup: e.askGroupName,
		ActionBack:     e.back,
	}
	exerciseMenu := map[ActionKind]transition{
		ActionExercise:    e.pickExercise,
		ActionAddExercise: e.askExerciseName,
		ActionBack:        e.back,
	}
	repsMenu := map[ActionKind]transition{
		ActionReps:    e.pickReps,
		ActionAddReps: e.askReps,
		ActionBack:    e.back,
	}
	weightMenu := map[ActionKind]transition{
		ActionWeight:    e.pickWeight,
		ActionNoWeight:  e.pickWeight,
		ActionAddWeight: e.askWeight,
		ActionBack:      e.back,
	}
	savedMenu := map[ActionKind]transition{
		ActionNextSet: e.nextSet,
	}
	nameInput := map[ActionKind]transition{
		ActionText: e.submitName,
		ActionBack: e.resume,
	}
	valueInput := map[ActionKind]transition{
		ActionAddValue: e.submitValue,
		ActionText:     e.submitValue,
		ActionBack:     e.resume,
	}
	backOnly := map[ActionKind]transition{
		ActionBack: e.back,
	}

	return map[State]map[ActionKind]transition{
		StateMainMenu: {
			ActionSingle:   e.startSingle,
			ActionSuperset: e.startSuperset,
			ActionStats:    e.startStats,
		},

		StateChooseGroup:    groupMenu,
		StateChooseExercise: exerciseMenu,
		StateChooseReps:     repsMenu,
		StateChooseWeight:   weightMenu,
		StateSetSaved:       savedMenu,

		StateChooseGroup1:    groupMenu,
		StateChooseExercise1: exerciseMenu,
		StateChooseGroup2:    groupMenu,
		StateChooseExercise2: exerciseMenu,
		StateChooseReps1:     repsMenu,
		StateChooseWeight1:   weightMenu,
		StateChooseReps2:     repsMenu,
		StateChooseWeight2:   weightMenu,
		StatePairSaved:       savedMenu,

		StateAwaitGroupName:    nameInput,
		StateAwaitExerciseName: nameInput,
		StateAddReps:           valueInput,
		StateAddWeight:         valueInput,

		StateStatsMenu: {
			ActionStatsDay:      e.openCalendar,
			ActionStatsExercise: e.openStatsGroups,
			ActionBack:          e.back,
		},
		StateStatsCalendar: {
			ActionMonth: e.pickMonth,
			ActionDay:   e.pickDay,
			ActionBack:  e.back,
		},
		StateStatsDay: backOnly,
		StateStatsGroup: {
			ActionGroup: e.pickGroup,
			ActionBack:  e.back,
		},
		StateStatsExercise: {
			ActionExercise: e.pickExercise,
			ActionBack:     e.back,
		},
		StateStatsResult: backOnly,
	}
}

// backTargets lists where Back leads from states that are not suspended input prompts.
var backTargets = map[State]State{
	StateChooseGroup:     StateMainMenu,
	StateChooseExercise:  StateChooseGroup,
	StateChooseReps:      StateChooseExercise,
	StateChooseWeight:    StateChooseReps,
	StateChooseGroup1:    StateMainMenu,
	StateChooseExercise1: StateChooseGroup1,
	StateChooseGroup2:    StateChooseExercise1,
	StateChooseExercise2: StateChooseGroup2,
	StateStatsMenu:       StateMainMenu,
	StateStatsCalendar:   StateStatsMenu,
	StateStatsDay:        StateStatsCalendar,
	StateStatsGroup:      StateStatsMenu,
	StateStatsExercise:   StateStatsGroup,
	StateStatsResult:     StateStatsExercise,
}

// next lists the state following a successful pick.
var next = map[State]State{
	StateChooseGroup:     StateChooseExercise,
	StateChooseExercise:  StateChooseReps,
	StateChooseReps:      StateChooseWeight,
	StateChooseWeight:    StateSetSaved,
	StateChooseGroup1:    StateChooseExercise1,
	StateChooseExercise1: StateChooseGroup2,
	StateChooseGroup2:    StateChooseExercise2,
	StateChooseExercise2: StateChooseReps1,
	StateChooseReps1:     StateChooseWeight1,
	StateChooseWeight1:   StateChooseReps2,
	StateChooseReps2:     StateChooseWeight2,
	StateChooseWeight2:   StatePairSaved,
	StateStatsGroup:      StateStatsExercise,
	StateStatsExercise:   StateStatsResult,
}
