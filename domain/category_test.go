package domain

import "testing"

func TestNewCategoryStoreHasNone(t *testing.T) {
	store := NewCategoryStore()

	if store.Len() != 1 {
		t.Fatalf("Expected 1 category in fresh store, got %d", store.Len())
	}
	none, ok := store.ByID(NoneID)
	if !ok {
		t.Fatal("Expected none category to exist")
	}
	if none.Name != NoneName {
		t.Errorf("Expected none category name %q, got %q", NoneName, none.Name)
	}
	if none.KarmaEffect != 0 {
		t.Errorf("Expected none karma effect 0, got %d", none.KarmaEffect)
	}
}

func TestFromLoadedDedupes(t *testing.T) {
	categories := []Category{
		{ID: NoneID, Name: NoneName, KarmaEffect: 1},
		{ID: 1, Name: "Work", ColorIndex: 0, KarmaEffect: 1},
		{ID: 1, Name: "Work Duplicate Id", ColorIndex: 1, KarmaEffect: 1},
		{ID: 2, Name: "work", ColorIndex: 2, KarmaEffect: 1},
	}

	store := FromLoaded(categories, 3)
	ordered := store.Ordered()

	if len(ordered) != 2 {
		t.Fatalf("Expected none + one deduped category, got %d", len(ordered))
	}
	if ordered[0].ID != NoneID {
		t.Errorf("Expected none first, got id %d", ordered[0].ID)
	}
	if ordered[1].Name != "Work" {
		t.Errorf("Expected first loaded name to win, got %q", ordered[1].Name)
	}
}

func TestFromLoadedRepairsNextID(t *testing.T) {
	store := FromLoaded([]Category{{ID: 9, Name: "Late", KarmaEffect: 1}}, 2)

	id, ok := store.Add("Fresh", "", -1)
	if !ok {
		t.Fatal("Expected Add to succeed")
	}
	if id <= 9 {
		t.Errorf("Expected new ID above loaded max 9, got %d", id)
	}
}

func TestAddRejectsBlankAndDuplicate(t *testing.T) {
	store := NewCategoryStore()

	if _, ok := store.Add("  ", "", -1); ok {
		t.Error("Expected blank name to be rejected")
	}
	if _, ok := store.Add("Work", "", -1); !ok {
		t.Fatal("Expected first Add to succeed")
	}
	if _, ok := store.Add("work", "", -1); ok {
		t.Error("Expected case-insensitive duplicate to be rejected")
	}
}

func TestDeleteProtectsNone(t *testing.T) {
	store := NewCategoryStore()
	store.Add("Work", "", -1)

	if _, ok := store.DeleteByIndex(0); ok {
		t.Error("Expected delete of none to fail")
	}
	if _, ok := store.DeleteByIndex(1); !ok {
		t.Error("Expected delete of Work to succeed")
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 category after delete, got %d", store.Len())
	}
}

func TestReorderKeepsIDsStable(t *testing.T) {
	tracker := NewTracker()
	workID, _ := tracker.Store.Add("Work", "Work category", 0)
	personalID, _ := tracker.Store.Add("Personal", "Personal category", 1)

	tracker.RecordSession(workID, "work session", 100)
	tracker.RecordSession(personalID, "personal session", 200)

	countFor := func(id CategoryID) int {
		n := 0
		for _, s := range tracker.Sessions {
			if s.CategoryID == id {
				n++
			}
		}
		return n
	}

	workBefore := countFor(workID)
	personalBefore := countFor(personalID)

	if !tracker.Store.MoveDown(1) {
		t.Fatal("Expected MoveDown to succeed")
	}

	if countFor(workID) != workBefore {
		t.Error("Expected work sessions to keep the same category ID after reorder")
	}
	if countFor(personalID) != personalBefore {
		t.Error("Expected personal sessions to keep the same category ID after reorder")
	}

	// Color resolution is keyed by ID, not position, so it survives too.
	workColorIdx, ok := tracker.Store.ColorIndex(workID)
	if !ok || workColorIdx != 0 {
		t.Errorf("Expected work color index 0 after reorder, got %d (ok=%v)", workColorIdx, ok)
	}
}

func TestMoveBounds(t *testing.T) {
	store := NewCategoryStore()
	store.Add("A", "", -1)
	store.Add("B", "", -1)

	if store.MoveUp(1) {
		t.Error("Expected MoveUp(1) to fail, nothing may move above none")
	}
	if store.MoveDown(0) {
		t.Error("Expected MoveDown(0) to fail for none")
	}
	if store.MoveDown(2) {
		t.Error("Expected MoveDown past the end to fail")
	}
	if !store.MoveDown(1) {
		t.Error("Expected MoveDown(1) to succeed")
	}
}

func TestColorIndexOrphan(t *testing.T) {
	store := NewCategoryStore()
	if _, ok := store.ColorIndex(CategoryID(777)); ok {
		t.Error("Expected orphaned ID to report ok=false")
	}
}

func TestSetKarmaProtectsNone(t *testing.T) {
	store := NewCategoryStore()
	store.Add("Work", "", -1)

	if store.SetKarmaByIndex(0, -1) {
		t.Error("Expected karma change on none to be rejected")
	}
	if !store.SetKarmaByIndex(1, -1) {
		t.Error("Expected karma change on Work to succeed")
	}
	c, _ := store.ByIndex(1)
	if c.KarmaEffect != -1 {
		t.Errorf("Expected karma effect -1, got %d", c.KarmaEffect)
	}
}
