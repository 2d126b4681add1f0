package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/strata/domain"
)

func TestCategoriesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.csv")
	categories := []domain.Category{
		{ID: domain.NoneID, Name: domain.NoneName},
		{ID: 1, Name: "Work", Description: "focus, deep work", ColorIndex: 0, KarmaEffect: 1},
		{ID: 2, Name: "Doomscrolling", ColorIndex: 5, KarmaEffect: -1},
	}

	if err := SaveCategories(path, categories); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}
	loaded, err := TryLoadCategories(path)
	if err != nil {
		t.Fatalf("TryLoadCategories failed: %v", err)
	}

	if len(loaded.Categories) != 3 {
		t.Fatalf("Expected 3 categories (none included), got %d", len(loaded.Categories))
	}
	work := loaded.Categories[1]
	if work.Name != "Work" || work.Description != "focus, deep work" || work.KarmaEffect != 1 {
		t.Errorf("Work row mangled: %+v", work)
	}
	if loaded.Categories[2].KarmaEffect != -1 {
		t.Errorf("Expected negative karma preserved, got %d", loaded.Categories[2].KarmaEffect)
	}
	if loaded.NextCategoryID != 3 {
		t.Errorf("Expected next ID 3, got %d", loaded.NextCategoryID)
	}
}

func TestSessionsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "time_log.csv")
	categories := []domain.Category{
		{ID: domain.NoneID, Name: domain.NoneName},
		{ID: 1, Name: "Work"},
	}
	sessions := []domain.Session{
		{ID: 1, Date: "2026-08-28", CategoryID: 1, Description: "deep work",
			StartTime: "09:00:00", EndTime: "10:30:00", ElapsedSeconds: 5400},
	}

	if err := SaveSessions(path, sessions, categories); err != nil {
		t.Fatalf("SaveSessions failed: %v", err)
	}
	loaded, err := TryLoadSessions(path, categories)
	if err != nil {
		t.Fatalf("TryLoadSessions failed: %v", err)
	}

	if len(loaded.Sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(loaded.Sessions))
	}
	s := loaded.Sessions[0]
	if s.CategoryID != 1 || s.ElapsedSeconds != 5400 || s.StartTime != "09:00:00" {
		t.Errorf("Session mangled: %+v", s)
	}
	if loaded.NextSessionID != 2 {
		t.Errorf("Expected next session ID 2, got %d", loaded.NextSessionID)
	}
}

func TestMissingFilesYieldDefaults(t *testing.T) {
	dir := t.TempDir()

	cats := LoadCategories(filepath.Join(dir, "categories.csv"))
	if len(cats.Categories) != 1 || cats.Categories[0].ID != domain.NoneID {
		t.Errorf("Expected none-only default table, got %+v", cats.Categories)
	}

	sessions := LoadSessions(filepath.Join(dir, "time_log.csv"), cats.Categories)
	if len(sessions.Sessions) != 0 || sessions.NextSessionID != 1 {
		t.Errorf("Expected empty default log, got %+v", sessions)
	}
}

func TestWrongHeaderIsSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.csv")
	os.WriteFile(path, []byte("identifier,title\n1,Work\n"), 0o644)

	_, err := TryLoadCategories(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %v", err)
	}
	if schemaErr.File != "categories.csv" {
		t.Errorf("Expected file name in error, got %q", schemaErr.File)
	}
	if !strings.Contains(schemaErr.Error(), "id,name,description") {
		t.Errorf("Expected expected-header in message, got %q", schemaErr.Error())
	}
}

func TestMalformedRowsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.csv")
	content := "id,name,description,color_index,karma_effect\n" +
		"not-a-number,Bad,,0,1\n" +
		"0,shadow-none,,0,1\n" +
		"5,,blank name,0,1\n" +
		"7,Good,,3,1\n"
	os.WriteFile(path, []byte(content), 0o644)

	loaded, err := TryLoadCategories(path)
	if err != nil {
		t.Fatalf("TryLoadCategories failed: %v", err)
	}
	if len(loaded.Categories) != 2 {
		t.Fatalf("Expected none + Good, got %d categories", len(loaded.Categories))
	}
	if loaded.Categories[1].Name != "Good" {
		t.Errorf("Expected surviving row Good, got %q", loaded.Categories[1].Name)
	}
	if loaded.NextCategoryID != 8 {
		t.Errorf("Expected next ID 8, got %d", loaded.NextCategoryID)
	}
}

func TestUnknownSessionCategoryResolvesToNone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "time_log.csv")
	content := "id,date,category_id,category_name,description,start_time,end_time,elapsed_seconds\n" +
		"1,2026-08-28,42,Ghost,,09:00:00,09:10:00,600\n"
	os.WriteFile(path, []byte(content), 0o644)

	loaded, err := TryLoadSessions(path, []domain.Category{{ID: domain.NoneID, Name: domain.NoneName}})
	if err != nil {
		t.Fatalf("TryLoadSessions failed: %v", err)
	}
	if loaded.Sessions[0].CategoryID != domain.NoneID {
		t.Errorf("Expected orphaned category resolved to none, got %d", loaded.Sessions[0].CategoryID)
	}
	if loaded.Sessions[0].ElapsedSeconds != 600 {
		t.Errorf("Expected elapsed kept, got %d", loaded.Sessions[0].ElapsedSeconds)
	}
}

func TestMigrateLegacyLayouts(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	catPath := CategoriesPath()
	logPath := TimeLogPath()
	os.WriteFile(catPath, []byte("1,Work,2\n2,Rest,4\n"), 0o644)
	os.WriteFile(logPath, []byte("1,2026-08-01,1,notes,09:00:00,10:00:00,3600\n"), 0o644)

	if err := MigrateCSV(); err != nil {
		t.Fatalf("MigrateCSV failed: %v", err)
	}

	cats, err := TryLoadCategories(catPath)
	if err != nil {
		t.Fatalf("Expected canonical categories after migrate: %v", err)
	}
	if len(cats.Categories) != 3 {
		t.Fatalf("Expected none + 2 migrated categories, got %d", len(cats.Categories))
	}
	if cats.Categories[1].Name != "Work" || cats.Categories[1].ColorIndex != 2 {
		t.Errorf("Work migrated wrong: %+v", cats.Categories[1])
	}

	sessions, err := TryLoadSessions(logPath, cats.Categories)
	if err != nil {
		t.Fatalf("Expected canonical sessions after migrate: %v", err)
	}
	if len(sessions.Sessions) != 1 || sessions.Sessions[0].ElapsedSeconds != 3600 {
		t.Errorf("Session migrated wrong: %+v", sessions.Sessions)
	}
	if sessions.Sessions[0].Description != "notes" {
		t.Errorf("Expected description carried, got %q", sessions.Sessions[0].Description)
	}
}

func TestMigrateCanonicalIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	categories := []domain.Category{
		{ID: domain.NoneID, Name: domain.NoneName},
		{ID: 1, Name: "Work", KarmaEffect: 1},
	}
	if err := SaveCategories(CategoriesPath(), categories); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}
	if err := MigrateCSV(); err != nil {
		t.Fatalf("MigrateCSV failed: %v", err)
	}

	loaded, err := TryLoadCategories(CategoriesPath())
	if err != nil {
		t.Fatalf("Load after migrate failed: %v", err)
	}
	if len(loaded.Categories) != 2 || loaded.Categories[1].Name != "Work" {
		t.Errorf("Expected canonical data unchanged, got %+v", loaded.Categories)
	}
}
