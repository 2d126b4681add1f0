package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/domain"
)

// MigrateCSV rewrites both data files in the canonical schema. Files
// already canonical round-trip unchanged (modulo formatting); legacy
// headerless layouts are upgraded. The originals are kept as rolling
// backups by the atomic writer.
func MigrateCSV() error {
	catPath, logPath := CategoriesPath(), TimeLogPath()

	categories, err := loadCategoriesAnySchema(catPath)
	if err != nil {
		return fmt.Errorf("migrate categories: %w", err)
	}
	sessions, err := loadSessionsAnySchema(logPath, categories)
	if err != nil {
		return fmt.Errorf("migrate sessions: %w", err)
	}

	if err := SaveCategories(catPath, categories); err != nil {
		return fmt.Errorf("rewrite categories: %w", err)
	}
	if err := SaveSessions(logPath, sessions, categories); err != nil {
		return fmt.Errorf("rewrite sessions: %w", err)
	}
	return nil
}

// loadCategoriesAnySchema accepts the canonical layout or the legacy
// headerless "id,name,color_index" one.
func loadCategoriesAnySchema(path string) ([]domain.Category, error) {
	loaded, err := TryLoadCategories(path)
	if err == nil {
		return loaded.Categories, nil
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		return nil, err
	}
	log.Printf("Warning: categories.csv not in canonical schema, attempting legacy layout")

	rows, err := readRawCSV(path)
	if err != nil {
		return nil, err
	}
	categories := defaultCategories().Categories
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		id, err := strconv.ParseUint(row[0], 10, 64)
		if err != nil || id == 0 {
			continue
		}
		name := strings.TrimSpace(row[1])
		if name == "" || strings.EqualFold(name, domain.NoneName) {
			continue
		}
		colorIdx := 0
		if len(row) >= 3 {
			if v, err := strconv.Atoi(row[2]); err == nil && v >= 0 {
				colorIdx = v % constants.PaletteSize
			}
		}
		categories = append(categories, domain.Category{
			ID:          domain.CategoryID(id),
			Name:        name,
			ColorIndex:  colorIdx,
			KarmaEffect: 1,
		})
	}
	return categories, nil
}

// loadSessionsAnySchema accepts the canonical layout or the legacy
// headerless one without the category_name column.
func loadSessionsAnySchema(path string, categories []domain.Category) ([]domain.Session, error) {
	loaded, err := TryLoadSessions(path, categories)
	if err == nil {
		return loaded.Sessions, nil
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		return nil, err
	}
	log.Printf("Warning: time_log.csv not in canonical schema, attempting legacy layout")

	known := make(map[uint64]bool, len(categories))
	for _, c := range categories {
		known[uint64(c.ID)] = true
	}

	rows, err := readRawCSV(path)
	if err != nil {
		return nil, err
	}
	var sessions []domain.Session
	for _, row := range rows {
		// legacy: id,date,category_id,description,start_time,end_time,elapsed_seconds
		if len(row) != 7 {
			continue
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		catID := domain.NoneID
		if raw, err := strconv.ParseUint(row[2], 10, 64); err == nil && known[raw] {
			catID = domain.CategoryID(raw)
		}
		elapsed, _ := strconv.Atoi(row[6])
		sessions = append(sessions, domain.Session{
			ID:             id,
			Date:           row[1],
			CategoryID:     catID,
			Description:    row[3],
			StartTime:      row[4],
			EndTime:        row[5],
			ElapsedSeconds: elapsed,
		})
	}
	return sessions, nil
}

func readRawCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
