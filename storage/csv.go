package storage

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/domain"
)

var categoriesHeader = []string{"id", "name", "description", "color_index", "karma_effect"}

var sessionsHeader = []string{
	"id", "date", "category_id", "category_name",
	"description", "start_time", "end_time", "elapsed_seconds",
}

// SchemaError reports a CSV file whose header does not match the
// canonical schema. The file is left untouched; the caller decides
// whether to fall back to defaults or run a migration.
type SchemaError struct {
	File     string
	Expected string
	Found    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("storage: invalid CSV schema for %s: expected '%s', found '%s'",
		e.File, e.Expected, e.Found)
}

// LoadedCategories is the result of reading categories.csv, always
// fronted by the reserved none category.
type LoadedCategories struct {
	Categories     []domain.Category
	NextCategoryID uint64
}

// LoadedSessions is the result of reading time_log.csv.
type LoadedSessions struct {
	Sessions      []domain.Session
	NextSessionID int
}

func defaultCategories() LoadedCategories {
	return LoadedCategories{
		Categories: []domain.Category{{
			ID:   domain.NoneID,
			Name: domain.NoneName,
		}},
		NextCategoryID: 1,
	}
}

// LoadCategories reads categories.csv, falling back to the default
// none-only table on any failure. Load never aborts the program; a bad
// file costs data, not a crash.
func LoadCategories(path string) LoadedCategories {
	loaded, err := TryLoadCategories(path)
	if err != nil {
		log.Printf("Warning: could not load categories file: %v (using defaults)", err)
		return defaultCategories()
	}
	return loaded
}

// TryLoadCategories reads categories.csv strictly: a missing file yields
// the defaults, a wrong header yields a *SchemaError, malformed rows are
// skipped with a warning.
func TryLoadCategories(path string) (LoadedCategories, error) {
	records, err := readCSV(path, "categories.csv", categoriesHeader)
	if err != nil {
		return LoadedCategories{}, err
	}

	loaded := defaultCategories()
	for _, rec := range records {
		id, err := strconv.ParseUint(rec[0], 10, 64)
		if err != nil {
			log.Printf("Warning: invalid category ID %q, skipping", rec[0])
			continue
		}
		if id == 0 {
			continue // the reserved slot is never loaded from disk
		}
		name := strings.TrimSpace(rec[1])
		if name == "" || strings.EqualFold(name, domain.NoneName) {
			continue
		}

		colorIdx, err := strconv.Atoi(rec[3])
		if err != nil || colorIdx < 0 {
			colorIdx = 0
		}
		karma, err := strconv.ParseInt(rec[4], 10, 8)
		if err != nil {
			karma = 1
		}

		loaded.Categories = append(loaded.Categories, domain.Category{
			ID:          domain.CategoryID(id),
			Name:        name,
			Description: rec[2],
			ColorIndex:  colorIdx % constants.PaletteSize,
			KarmaEffect: int8(karma),
		})
		if id+1 > loaded.NextCategoryID {
			loaded.NextCategoryID = id + 1
		}
	}
	return loaded, nil
}

// LoadSessions reads time_log.csv, falling back to an empty log on any
// failure. Unknown category IDs resolve to none rather than failing; a
// category deleted elsewhere never corrupts the session log.
func LoadSessions(path string, categories []domain.Category) LoadedSessions {
	loaded, err := TryLoadSessions(path, categories)
	if err != nil {
		log.Printf("Warning: could not load sessions file: %v (using defaults)", err)
		return LoadedSessions{NextSessionID: 1}
	}
	return loaded
}

// TryLoadSessions reads time_log.csv strictly, with the same header and
// row policy as TryLoadCategories.
func TryLoadSessions(path string, categories []domain.Category) (LoadedSessions, error) {
	records, err := readCSV(path, "time_log.csv", sessionsHeader)
	if err != nil {
		return LoadedSessions{}, err
	}

	known := make(map[uint64]bool, len(categories))
	for _, c := range categories {
		known[uint64(c.ID)] = true
	}

	loaded := LoadedSessions{NextSessionID: 1}
	for _, rec := range records {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			log.Printf("Warning: invalid session ID %q, skipping", rec[0])
			continue
		}

		catID := domain.NoneID
		if raw, err := strconv.ParseUint(rec[2], 10, 64); err == nil && known[raw] {
			catID = domain.CategoryID(raw)
		}
		elapsed, err := strconv.Atoi(rec[7])
		if err != nil {
			elapsed = 0
		}

		loaded.Sessions = append(loaded.Sessions, domain.Session{
			ID:             id,
			Date:           rec[1],
			CategoryID:     catID,
			Description:    rec[4],
			StartTime:      rec[5],
			EndTime:        rec[6],
			ElapsedSeconds: elapsed,
		})
		if id+1 > loaded.NextSessionID {
			loaded.NextSessionID = id + 1
		}
	}
	return loaded, nil
}

// readCSV opens a CSV, validates its header, and returns the data rows
// with the expected field count. A missing file returns no rows and no
// error.
func readCSV(path, label string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", label, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", label, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if !headerMatches(rows[0], header) {
		return nil, &SchemaError{
			File:     label,
			Expected: strings.Join(header, ","),
			Found:    strings.Join(rows[0], ","),
		}
	}

	var out [][]string
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			log.Printf("Warning: malformed row in %s (%d fields), skipping", label, len(row))
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func headerMatches(row, expected []string) bool {
	if len(row) != len(expected) {
		return false
	}
	for i := range row {
		if strings.TrimSpace(row[i]) != expected[i] {
			return false
		}
	}
	return true
}

// SaveCategories writes the category table atomically. The reserved none
// row is implicit and never written.
func SaveCategories(path string, categories []domain.Category) error {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write(categoriesHeader)
	for _, c := range categories {
		if c.ID == domain.NoneID {
			continue
		}
		w.Write([]string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Name,
			c.Description,
			strconv.Itoa(c.ColorIndex),
			strconv.FormatInt(int64(c.KarmaEffect), 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return AtomicWrite(path, []byte(sb.String()))
}

// SaveSessions writes the session log atomically, denormalizing the
// category name per row so the file stays readable on its own.
func SaveSessions(path string, sessions []domain.Session, categories []domain.Category) error {
	names := make(map[domain.CategoryID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write(sessionsHeader)
	for _, s := range sessions {
		name, ok := names[s.CategoryID]
		if !ok {
			name = domain.NoneName
		}
		w.Write([]string{
			strconv.Itoa(s.ID),
			s.Date,
			strconv.FormatUint(uint64(s.CategoryID), 10),
			name,
			s.Description,
			s.StartTime,
			s.EndTime,
			strconv.Itoa(s.ElapsedSeconds),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return AtomicWrite(path, []byte(sb.String()))
}
