package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/sets"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	statsFileSuffix = "_stats.csv"
	exercisesFile   = "exercises.csv"
	numbersFile     = "numbers.csv"
)

var errMissingColumn = errors.New("missing column")

type vocabulary interface {
	EnsureGroup(ctx context.Context, name string) (int, error)
	EnsureExercise(ctx context.Context, groupID int, name string) (int, error)
	EnsureReps(ctx context.Context, reps int) error
	EnsureWeight(ctx context.Context, weight float64) error
}

type setAppender interface {
	AppendSet(ctx context.Context, set sets.CompletedSet) (*sets.CompletedSet, error)
}

type ImportResult struct {
	Rows     int
	Imported int
}

type Importer struct {
	vocabulary vocabulary
	sets       setAppender
	// resolved exercise ids, keyed by "group\x00exercise"
	exerciseIDs map[string]int
}

func NewImporter(vocabulary vocabulary, setsRepo setAppender) *Importer {
	return &Importer{
		vocabulary:  vocabulary,
		sets:        setsRepo,
		exerciseIDs: map[string]int{},
	}
}

type exerciseRow struct {
	line     int
	group    string
	exercise string
}

type statsRow struct {
	line      int
	owner     int64
	date      time.Time
	group     string
	exercise  string
	setNumber int
	weight    *float64
	reps      int
}

// csvTable maps header names to column positions.
type csvTable struct {
	columns map[string]int
	records [][]string
}

func readTable(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, name)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	return &csvTable{columns: columns, records: records}, nil
}

func (t *csvTable) value(record []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseExercises(r io.Reader) ([]exerciseRow, error) {
	table, err := readTable(r, "group", "exercise")
	if err != nil {
		return nil, err
	}

	var rows []exerciseRow
	var errs error
	for i, record := range table.records {
		// header is line 1
		line := i + 2
		group := table.value(record, "group")
		exercise := table.value(record, "exercise")
		if group == "" || exercise == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: group and exercise are required", line))
			continue
		}
		rows = append(rows, exerciseRow{line: line, group: group, exercise: exercise})
	}

	return rows, errs
}

// parseNumbers reads the single column numbers file. Every value is offered as a
// weight; positive whole values are offered as rep counts too.
func parseNumbers(r io.Reader) (reps []int, weights []float64, _ error) {
	table, err := readTable(r, "numbers")
	if err != nil {
		return nil, nil, err
	}

	var errs error
	for i, record := range table.records {
		raw := table.value(record, "numbers")
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil || n < 0 || math.IsInf(n, 0) || math.IsNaN(n) {
			errs = multierr.Append(errs, fmt.Errorf("line %d: invalid number %q", i+2, raw))
			continue
		}
		weights = append(weights, n)
		if n > 0 && n == math.Trunc(n) {
			reps = append(reps, int(n))
		}
	}

	return reps, weights, errs
}

func parseStats(r io.Reader) ([]statsRow, error) {
	table, err := readTable(r, "chat_id", "date", "group", "exercise", "run", "weight", "reps")
	if err != nil {
		return nil, err
	}

	var rows []statsRow
	var errs error
	for i, record := range table.records {
		row, err := parseStatsRecord(table, record, i+2)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		rows = append(rows, row)
	}

	return rows, errs
}

func parseStatsRecord(table *csvTable, record []string, line int) (statsRow, error) {
	row := statsRow{
		line:     line,
		group:    table.value(record, "group"),
		exercise: table.value(record, "exercise"),
	}
	if row.group == "" || row.exercise == "" {
		return row, fmt.Errorf("line %d: group and exercise are required", line)
	}

	owner, err := strconv.ParseInt(table.value(record, "chat_id"), 10, 64)
	if err != nil {
		return row, fmt.Errorf("line %d: invalid chat_id: %w", line, err)
	}
	row.owner = owner

	date, err := time.Parse(time.DateOnly, table.value(record, "date"))
	if err != nil {
		return row, fmt.Errorf("line %d: invalid date %q", line, table.value(record, "date"))
	}
	row.date = date

	setNumber, err := strconv.Atoi(table.value(record, "run"))
	if err != nil || setNumber <= 0 {
		return row, fmt.Errorf("line %d: invalid run %q", line, table.value(record, "run"))
	}
	row.setNumber = setNumber

	reps, err := strconv.Atoi(table.value(record, "reps"))
	if err != nil || reps <= 0 {
		return row, fmt.Errorf("line %d: invalid reps %q", line, table.value(record, "reps"))
	}
	row.reps = reps

	if raw := table.value(record, "weight"); raw != "" {
		w, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil || w < 0 {
			return row, fmt.Errorf("line %d: invalid weight %q", line, raw)
		}
		row.weight = &w
	}

	return row, nil
}

func (i *Importer) ImportExercises(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()

	rows, errs := parseExercises(f)
	if rows == nil && errs != nil {
		return ImportResult{}, errs
	}

	result := ImportResult{Rows: len(rows)}
	for _, row := range rows {
		if _, err := i.ensureExercise(ctx, row.group, row.exercise); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", row.line, err))
			continue
		}
		result.Imported++
	}

	log.Printf("exercises [%s]: %d/%d imported", path, result.Imported, result.Rows)
	return result, errs
}

func (i *Importer) ImportNumbers(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()

	reps, weights, errs := parseNumbers(f)
	result := ImportResult{Rows: len(weights)}
	for _, w := range weights {
		if err := i.vocabulary.EnsureWeight(ctx, w); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("weight %v: %w", w, err))
			continue
		}
		result.Imported++
	}
	for _, r := range reps {
		if err := i.vocabulary.EnsureReps(ctx, r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reps %d: %w", r, err))
		}
	}

	log.Printf("numbers [%s]: %d weights, %d rep counts", path, len(weights), len(reps))
	return result, errs
}

// ImportStats appends every row of every *_stats.csv file in dir. Unlike the
// vocabularies, sets are append-only, so running it twice duplicates them.
func (i *Importer) ImportStats(ctx context.Context, dir string) (ImportResult, error) {
	files, err := statsFiles(dir)
	if err != nil {
		return ImportResult{}, err
	}
	if len(files) == 0 {
		log.Warnf("no %s files found in [%s]", statsFileSuffix, dir)
		return ImportResult{}, nil
	}

	var result ImportResult
	var errs error
	for _, path := range files {
		fileResult, err := i.importStatsFile(ctx, path)
		result.Rows += fileResult.Rows
		result.Imported += fileResult.Imported
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
		}
	}

	return result, errs
}

func (i *Importer) importStatsFile(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()

	rows, errs := parseStats(f)
	result := ImportResult{Rows: len(rows)}
	for _, row := range rows {
		exerciseID, err := i.ensureExercise(ctx, row.group, row.exercise)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", row.line, err))
			continue
		}
		if _, err := i.sets.AppendSet(ctx, sets.CompletedSet{
			Owner:      row.owner,
			Date:       row.date,
			ExerciseID: exerciseID,
			SetNumber:  row.setNumber,
			Reps:       row.reps,
			Weight:     row.weight,
		}); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", row.line, err))
			continue
		}
		result.Imported++
	}

	log.Printf("stats [%s]: %d/%d rows imported", path, result.Imported, result.Rows)
	return result, errs
}

// ImportAll loads exercises.csv and numbers.csv from dir when present, then the stats files.
func (i *Importer) ImportAll(ctx context.Context, dir string) error {
	var errs error

	exercisesPath := filepath.Join(dir, exercisesFile)
	if fileExists(exercisesPath) {
		_, err := i.ImportExercises(ctx, exercisesPath)
		errs = multierr.Append(errs, err)
	} else {
		log.Warnf("[%s] not found, skipping", exercisesPath)
	}

	numbersPath := filepath.Join(dir, numbersFile)
	if fileExists(numbersPath) {
		_, err := i.ImportNumbers(ctx, numbersPath)
		errs = multierr.Append(errs, err)
	} else {
		log.Warnf("[%s] not found, skipping", numbersPath)
	}

	_, err := i.ImportStats(ctx, dir)
	return multierr.Append(errs, err)
}

func (i *Importer) ensureExercise(ctx context.Context, group, exercise string) (int, error) {
	key := group + "\x00" + exercise
	if id, ok := i.exerciseIDs[key]; ok {
		return id, nil
	}

	groupID, err := i.vocabulary.EnsureGroup(ctx, group)
	if err != nil {
		return 0, fmt.Errorf("ensure group %q: %w", group, err)
	}
	exerciseID, err := i.vocabulary.EnsureExercise(ctx, groupID, exercise)
	if err != nil {
		return 0, fmt.Errorf("ensure exercise %q: %w", exercise, err)
	}

	i.exerciseIDs[key] = exerciseID
	return exerciseID, nil
}

func statsFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), statsFileSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	return files, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
