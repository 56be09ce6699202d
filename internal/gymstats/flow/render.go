package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/gymbot/internal/gymstats/stats"
)

// NoopToken marks buttons that only carry a label, like calendar headers.
const NoopToken = "-"

type Button struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// RenderInstruction tells the transport what to show. Unchanged means
// nothing needs to be sent.
type RenderInstruction struct {
	Text         string     `json:"text"`
	Menu         [][]Button `json:"menu,omitempty"`
	EditExisting bool       `json:"editExisting"`
	Unchanged    bool       `json:"unchanged"`
}

var (
	repsCandidates   = []int{5, 8, 12, 16, 18, 25}
	weightCandidates = []float64{1.25, 2.5, 5, 7.5, 12.5, 20}

	weekdayLabels = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}
	monthNames    = [...]string{
		"", "Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	}
)

const (
	labelBack     = "🔙 Назад"
	labelAdd      = "➕"
	labelNoWeight = "⚪ Без веса"
	labelFinish   = "🏁 Закончить"
	gridColumns   = 4
)

type menuBuilder struct {
	kind    MenuKind
	rows    [][]Button
	choices []Choice
}

func newMenu(kind MenuKind) *menuBuilder {
	return &menuBuilder{kind: kind}
}

func (b *menuBuilder) button(label string, c Choice) Button {
	if c.Label == "" {
		c.Label = label
	}
	token := string(rune(b.kind)) + strconv.Itoa(len(b.choices))
	b.choices = append(b.choices, c)
	return Button{Label: label, Token: token}
}

func (b *menuBuilder) row(buttons ...Button) {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
}

func (b *menuBuilder) grid(buttons []Button, columns int) {
	for start := 0; start < len(buttons); start += columns {
		end := min(start+columns, len(buttons))
		b.row(buttons[start:end]...)
	}
}

// done stores the lookup table of this render in the session, replacing
// the previous one of the same kind.
func (b *menuBuilder) done(s *Session, text string) RenderInstruction {
	s.Menus[b.kind] = Menu{Choices: b.choices}
	return RenderInstruction{
		Text: text,
		Menu: b.rows,
	}
}

func noop(label string) Button {
	return Button{Label: label, Token: NoopToken}
}

var errBadToken = errors.New("malformed token")

func parseToken(token string) (MenuKind, int, error) {
	if len(token) < 2 {
		return 0, 0, errBadToken
	}
	idx, err := strconv.Atoi(token[1:])
	if err != nil || idx < 0 {
		return 0, 0, errBadToken
	}
	return MenuKind(token[0]), idx, nil
}

func (s *Session) resolve(token string) (Choice, bool) {
	kind, idx, err := parseToken(token)
	if err != nil {
		return Choice{}, false
	}
	menu, ok := s.Menus[kind]
	if !ok || idx >= len(menu.Choices) {
		return Choice{}, false
	}
	return menu.Choices[idx], true
}

// FormatWeight prints up to two decimals with trailing zeros trimmed.
func FormatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func formatOptionalWeight(w *float64) string {
	if w == nil {
		return "нет"
	}
	return FormatWeight(*w)
}

func whichText(h Half) string {
	if h == HalfSecond {
		return "второго"
	}
	return "первого"
}

func (e *Engine) renderers() map[State]func(context.Context, *Session) (RenderInstruction, error) {
	return map[State]func(context.Context, *Session) (RenderInstruction, error){
		StateMainMenu:          e.renderMainMenu,
		StateChooseGroup:       e.renderGroups,
		StateChooseGroup1:      e.renderGroups,
		StateChooseGroup2:      e.renderGroups,
		StateChooseExercise:    e.renderExercises,
		StateChooseExercise1:   e.renderExercises,
		StateChooseExercise2:   e.renderExercises,
		StateChooseReps:        e.renderReps,
		StateChooseReps1:       e.renderReps,
		StateChooseReps2:       e.renderReps,
		StateChooseWeight:      e.renderWeights,
		StateChooseWeight1:     e.renderWeights,
		StateChooseWeight2:     e.renderWeights,
		StateSetSaved:          e.renderSetSaved,
		StatePairSaved:         e.renderPairSaved,
		StateAwaitGroupName:    e.renderNamePrompt,
		StateAwaitExerciseName: e.renderNamePrompt,
		StateAddReps:           e.renderAddValue,
		StateAddWeight:         e.renderAddValue,
		StateStatsMenu:         e.renderStatsMenu,
		StateStatsCalendar:     e.renderCalendar,
		StateStatsDay:          e.renderDay,
		StateStatsGroup:        e.renderGroups,
		StateStatsExercise:     e.renderExercises,
		StateStatsResult:       e.renderStatsResult,
	}
}

// render draws the menu of the session's current state.
func (e *Engine) render(ctx context.Context, s *Session) (RenderInstruction, error) {
	r, ok := e.renderByState[s.State]
	if !ok {
		return RenderInstruction{}, fmt.Errorf("no render for state %s", s.State)
	}
	return r(ctx, s)
}

func (e *Engine) renderMainMenu(_ context.Context, s *Session) (RenderInstruction, error) {
	m := newMenu(MenuMain)
	m.row(m.button("🏋️‍♂️ Одиночное упражнение", Choice{Kind: ActionSingle}))
	m.row(m.button("🔥 Суперсет", Choice{Kind: ActionSuperset}))
	m.row(m.button("📊 Статистика", Choice{Kind: ActionStats}))
	return m.done(s, "Выберите режим:"), nil
}

func (e *Engine) renderGroups(ctx context.Context, s *Session) (RenderInstruction, error) {
	groups, err := e.refData.ListGroups(ctx)
	if err != nil {
		return RenderInstruction{}, storeErr("list groups", err)
	}

	text := "Выберите группу мышц:"
	switch s.State {
	case StateChooseGroup1:
		text = "Выберите группу мышц для первого упражнения:"
	case StateChooseGroup2:
		text = "Выберите группу мышц для второго упражнения:"
	case StateStatsGroup:
		text = "Выберите группу:"
	}

	m := newMenu(MenuGroups)
	for _, g := range groups {
		m.row(m.button(g.Name, Choice{Kind: ActionGroup, ID: g.ID}))
	}
	if s.State != StateStatsGroup {
		m.row(m.button(labelAdd+" Добавить группу", Choice{Kind: ActionAddGroup}))
	}
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))

	return m.done(s, text), nil
}

// currentGroup is the muscle group the exercise menu of the current state lists.
func (s *Session) currentGroup() int {
	switch f := s.Flow.(type) {
	case *SingleFlow:
		return f.GroupID
	case *SupersetFlow:
		if h, ok := halfOf(s.State); ok {
			return f.pick(h).GroupID
		}
		return f.pick(f.Pending).GroupID
	case *StatsFlow:
		return f.GroupID
	}
	return 0
}

func (e *Engine) renderExercises(ctx context.Context, s *Session) (RenderInstruction, error) {
	groupID := s.currentGroup()
	if groupID == 0 {
		return RenderInstruction{}, &SequenceError{State: s.State, Action: ActionGroup, Reason: reasonNoGroup}
	}

	exercises, err := e.refData.ListExercises(ctx, groupID)
	if err != nil {
		return RenderInstruction{}, storeErr("list exercises", err)
	}

	text := "Выберите упражнение:"
	switch s.State {
	case StateChooseExercise1:
		text = "Выберите первое упражнение:"
	case StateChooseExercise2:
		text = "Выберите второе упражнение:"
	}

	m := newMenu(MenuExercises)
	for _, ex := range exercises {
		m.row(m.button(ex.Name, Choice{Kind: ActionExercise, ID: ex.ID}))
	}
	if s.State != StateStatsExercise {
		m.row(m.button(labelAdd+" Добавить упражнение", Choice{Kind: ActionAddExercise}))
	}
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))

	return m.done(s, text), nil
}

func (e *Engine) renderReps(ctx context.Context, s *Session) (RenderInstruction, error) {
	reps, err := e.refData.ListReps(ctx)
	if err != nil {
		return RenderInstruction{}, storeErr("list reps", err)
	}

	m := newMenu(MenuReps)
	buttons := make([]Button, 0, len(reps))
	for _, r := range reps {
		buttons = append(buttons, m.button(strconv.Itoa(r), Choice{Kind: ActionReps, Reps: r}))
	}
	m.grid(buttons, gridColumns)
	m.row(m.button(labelAdd, Choice{Kind: ActionAddReps}))

	text := fmt.Sprintf("Подход %d: выберите количество повторений:", s.SetNumber)
	if h, ok := halfOf(s.State); ok {
		text = fmt.Sprintf("Суперсет %d: выберите повторения для %s упражнения:", s.SetNumber, whichText(h))
	} else {
		m.row(m.button(labelBack, Choice{Kind: ActionBack}))
	}

	return m.done(s, text), nil
}

func (e *Engine) renderWeights(ctx context.Context, s *Session) (RenderInstruction, error) {
	weights, err := e.refData.ListWeights(ctx)
	if err != nil {
		return RenderInstruction{}, storeErr("list weights", err)
	}

	m := newMenu(MenuWeights)
	buttons := make([]Button, 0, len(weights))
	for _, w := range weights {
		buttons = append(buttons, m.button(FormatWeight(w), Choice{Kind: ActionWeight, Weight: w}))
	}
	m.grid(buttons, gridColumns)
	m.row(
		m.button(labelAdd, Choice{Kind: ActionAddWeight}),
		m.button(labelNoWeight, Choice{Kind: ActionNoWeight}),
	)

	text := fmt.Sprintf("Подход %d: выберите вес (кг):", s.SetNumber)
	if h, ok := halfOf(s.State); ok {
		text = fmt.Sprintf("Суперсет %d: выберите вес для %s упражнения:", s.SetNumber, whichText(h))
	} else {
		m.row(m.button(labelBack, Choice{Kind: ActionBack}))
	}

	return m.done(s, text), nil
}

func (e *Engine) renderSetSaved(_ context.Context, s *Session) (RenderInstruction, error) {
	f, ok := s.Single()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Reason: "not in single mode"}
	}

	m := newMenu(MenuSaved)
	m.row(
		m.button("➕ Ещё подход", Choice{Kind: ActionNextSet}),
		m.button(labelFinish, Choice{Kind: ActionMainMenu}),
	)
	text := fmt.Sprintf("Подход %d сохранён: %d повторений, вес: %s кг", s.SetNumber, f.Reps, formatOptionalWeight(f.Weight))

	return m.done(s, text), nil
}

func (e *Engine) renderPairSaved(_ context.Context, s *Session) (RenderInstruction, error) {
	f, ok := s.Superset()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Reason: "not in superset mode"}
	}

	m := newMenu(MenuSaved)
	m.row(
		m.button("➕ Следующий сет", Choice{Kind: ActionNextSet}),
		m.button(labelFinish, Choice{Kind: ActionMainMenu}),
	)
	first, second := f.pick(HalfFirst), f.pick(HalfSecond)
	text := fmt.Sprintf(
		"Суперсет %d сохранён: 1) %d повт, вес %s кг; 2) %d повт, вес %s кг",
		s.SetNumber,
		first.Reps, formatOptionalWeight(first.Weight),
		second.Reps, formatOptionalWeight(second.Weight),
	)

	return m.done(s, text), nil
}

func (e *Engine) renderNamePrompt(_ context.Context, s *Session) (RenderInstruction, error) {
	text := "Отправьте название новой группы мышц сообщением."
	if s.State == StateAwaitExerciseName {
		text = "Отправьте название нового упражнения сообщением."
	}

	m := newMenu(MenuPrompt)
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))

	return m.done(s, text), nil
}

func (e *Engine) renderAddValue(_ context.Context, s *Session) (RenderInstruction, error) {
	m := newMenu(MenuAddValue)
	var buttons []Button
	text := "Добавить новое значение повторений (или отправьте число сообщением):"
	if s.State == StateAddWeight {
		text = "Добавить новый вес в кг (или отправьте число сообщением):"
		for _, w := range weightCandidates {
			buttons = append(buttons, m.button(FormatWeight(w), Choice{Kind: ActionAddValue, Weight: w}))
		}
	} else {
		for _, r := range repsCandidates {
			buttons = append(buttons, m.button(strconv.Itoa(r), Choice{Kind: ActionAddValue, Reps: r}))
		}
	}
	m.grid(buttons, 3)
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))

	return m.done(s, text), nil
}

func (e *Engine) renderStatsMenu(_ context.Context, s *Session) (RenderInstruction, error) {
	m := newMenu(MenuStats)
	m.row(
		m.button("📅 За день", Choice{Kind: ActionStatsDay}),
		m.button("🏷 По упражнению", Choice{Kind: ActionStatsExercise}),
	)
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))
	return m.done(s, "Что показать?"), nil
}

func (e *Engine) renderCalendar(ctx context.Context, s *Session) (RenderInstruction, error) {
	f, ok := s.Stats()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Reason: "not in stats mode"}
	}

	cal, err := e.stats.MonthCalendar(ctx, s.owner, f.Month.Year, f.Month.Month)
	if err != nil {
		return RenderInstruction{}, storeErr("month calendar", err)
	}

	m := newMenu(MenuCalendar)
	m.row(
		m.button("◀️", Choice{Kind: ActionMonth, Month: cal.Prev}),
		noop(fmt.Sprintf("%s %d", monthNames[cal.Month], cal.Year)),
		m.button("▶️", Choice{Kind: ActionMonth, Month: cal.Next}),
	)

	header := make([]Button, 0, len(weekdayLabels))
	for _, wd := range weekdayLabels {
		header = append(header, noop(wd))
	}
	m.row(header...)

	ym := stats.YearMonth{Year: cal.Year, Month: cal.Month}
	for _, week := range cal.Weeks {
		row := make([]Button, 0, len(week))
		for _, day := range week {
			if day == 0 {
				row = append(row, noop(" "))
				continue
			}
			label := strconv.Itoa(day)
			if cal.Active[day] {
				label += "⭐"
			}
			row = append(row, m.button(label, Choice{Kind: ActionDay, Date: ym.First().AddDate(0, 0, day-1)}))
		}
		m.row(row...)
	}
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))

	return m.done(s, "Выберите день:"), nil
}

func (e *Engine) renderDay(ctx context.Context, s *Session) (RenderInstruction, error) {
	f, ok := s.Stats()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Reason: "not in stats mode"}
	}

	var text string
	summary, err := e.stats.DaySummary(ctx, s.owner, f.Day)
	switch {
	case errors.Is(err, stats.ErrNoData):
		text = fmt.Sprintf("Статистика за %s:\n\nНет данных за выбранный день.", f.Day.Format("02.01.2006"))
	case err != nil:
		return RenderInstruction{}, storeErr("day summary", err)
	default:
		text = summary.Text()
	}

	m := newMenu(MenuDay)
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))
	return m.done(s, text), nil
}

func (e *Engine) renderStatsResult(ctx context.Context, s *Session) (RenderInstruction, error) {
	f, ok := s.Stats()
	if !ok {
		return RenderInstruction{}, &SequenceError{State: s.State, Reason: "not in stats mode"}
	}

	st, err := e.stats.ExerciseStats(ctx, s.owner, f.ExerciseID, e.lookbackDays)
	if err != nil {
		return RenderInstruction{}, storeErr("exercise stats", err)
	}

	m := newMenu(MenuResult)
	m.row(m.button(labelBack, Choice{Kind: ActionBack}))
	return m.done(s, st.Text(f.ExerciseName)), nil
}
