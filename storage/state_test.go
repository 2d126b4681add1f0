package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/lixenwraith/strata/domain"
)

func newTestStateStore(t *testing.T, name string) *StateStore {
	t.Helper()
	app := fmt.Sprintf("strata_test_%s_%d", name, time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Skipf("gdata storage unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", app))
		}
	})
	return NewStateStore(m)
}

func TestActiveSessionRoundTrip(t *testing.T) {
	store := newTestStateStore(t, "active_session")

	if _, ok := store.LoadActiveSession(); ok {
		t.Fatal("Expected no active session in fresh store")
	}

	session := ActiveSession{
		Project:      "strata",
		Description:  "writing",
		CategoryID:   3,
		CategoryName: "Work",
		StartTime:    time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
	}
	if err := store.SaveActiveSession(session); err != nil {
		t.Fatalf("SaveActiveSession failed: %v", err)
	}

	loaded, ok := store.LoadActiveSession()
	if !ok {
		t.Fatal("Expected active session after save")
	}
	if loaded != session {
		t.Errorf("Expected %+v, got %+v", session, loaded)
	}

	if err := store.ClearActiveSession(); err != nil {
		t.Fatalf("ClearActiveSession failed: %v", err)
	}
	if _, ok := store.LoadActiveSession(); ok {
		t.Error("Expected no active session after clear")
	}
}

func TestCategoryTagsRoundTripAndPrune(t *testing.T) {
	store := newTestStateStore(t, "category_tags")

	catStore := domain.NewCategoryStore()
	workID, _ := catStore.Add("Work", "", -1)

	tags := NewCategoryTags()
	tags.TagsByCategory[uint64(workID)] = []string{"focus", "", "deep"}
	tags.TagsByCategory[999] = []string{"ghost"}
	if err := store.SaveCategoryTags(tags); err != nil {
		t.Fatalf("SaveCategoryTags failed: %v", err)
	}

	loaded := store.LoadCategoryTags(catStore)
	if got := loaded.TagsByCategory[uint64(workID)]; len(got) != 2 {
		t.Errorf("Expected blanks pruned, got %v", got)
	}
	if _, ok := loaded.TagsByCategory[999]; ok {
		t.Error("Expected tags for deleted categories pruned")
	}
}

func TestNilManagerDegradesQuietly(t *testing.T) {
	store := NewStateStore(nil)

	if err := store.SaveActiveSession(ActiveSession{Project: "x"}); err != nil {
		t.Errorf("Expected nil-manager save to no-op, got %v", err)
	}
	if _, ok := store.LoadActiveSession(); ok {
		t.Error("Expected no session from nil-manager store")
	}
	if err := store.ClearActiveSession(); err != nil {
		t.Errorf("Expected nil-manager clear to no-op, got %v", err)
	}
	tags := store.LoadCategoryTags(nil)
	if len(tags.TagsByCategory) != 0 {
		t.Error("Expected empty tags from nil-manager store")
	}
}
