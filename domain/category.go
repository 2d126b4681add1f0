package domain

import (
	"strings"

	"github.com/lixenwraith/strata/constants"
)

// CategoryID is the stable identity of a category. IDs are assigned once at
// creation and never reused or renumbered; display order lives separately in
// the CategoryStore, so reordering or renaming can never change what a grain
// or a session record refers to.
type CategoryID uint64

// NoneID is the reserved neutral category present in every store. It cannot
// be deleted, reordered above, or given a karma effect.
const NoneID CategoryID = 0

// NoneName is the display name of the reserved category.
const NoneName = "none"

// Category is a user-defined time bucket.
type Category struct {
	ID          CategoryID
	Name        string
	Description string
	ColorIndex  int  // index into the fixed render palette
	KarmaEffect int8 // sign/weight applied in karma reports
}

// CategoryStore maps stable IDs to categories and keeps display order as a
// separate concern. Lookups by index always go through the order slice.
type CategoryStore struct {
	byID   map[CategoryID]Category
	order  []CategoryID
	nextID uint64
}

// NewCategoryStore creates a store containing only the reserved none category.
func NewCategoryStore() *CategoryStore {
	none := Category{
		ID:          NoneID,
		Name:        NoneName,
		ColorIndex:  0,
		KarmaEffect: 0,
	}
	return &CategoryStore{
		byID:   map[CategoryID]Category{NoneID: none},
		order:  []CategoryID{NoneID},
		nextID: 1,
	}
}

// FromLoaded rebuilds a store from persisted categories. Duplicate IDs,
// duplicate names (case-insensitive) and attempts to shadow the none category
// are dropped; nextID is repaired to exceed every surviving ID.
func FromLoaded(categories []Category, nextID uint64) *CategoryStore {
	store := NewCategoryStore()
	seenNames := map[string]bool{NoneName: true}

	var maxID uint64
	for _, c := range categories {
		if uint64(c.ID) > maxID {
			maxID = uint64(c.ID)
		}
		if c.ID == NoneID || strings.EqualFold(c.Name, NoneName) {
			continue
		}
		if _, dup := store.byID[c.ID]; dup {
			continue
		}
		normalized := strings.ToLower(c.Name)
		if seenNames[normalized] {
			continue
		}
		seenNames[normalized] = true
		store.order = append(store.order, c.ID)
		store.byID[c.ID] = c
	}

	store.nextID = max(nextID, maxID+1)
	if store.nextID < 1 {
		store.nextID = 1
	}
	return store
}

// Len returns the number of categories including none.
func (s *CategoryStore) Len() int {
	return len(s.order)
}

// IDAtIndex returns the category ID at a display position.
func (s *CategoryStore) IDAtIndex(index int) (CategoryID, bool) {
	if index < 0 || index >= len(s.order) {
		return NoneID, false
	}
	return s.order[index], true
}

// IndexOfID returns the display position of a category.
func (s *CategoryStore) IndexOfID(id CategoryID) (int, bool) {
	for i, existing := range s.order {
		if existing == id {
			return i, true
		}
	}
	return 0, false
}

// ByID returns the category with the given stable ID.
func (s *CategoryStore) ByID(id CategoryID) (Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// ByIndex returns the category at a display position.
func (s *CategoryStore) ByIndex(index int) (Category, bool) {
	id, ok := s.IDAtIndex(index)
	if !ok {
		return Category{}, false
	}
	return s.ByID(id)
}

// IDByName returns the ID of the category with the exact given name.
func (s *CategoryStore) IDByName(name string) (CategoryID, bool) {
	for _, id := range s.order {
		if c, ok := s.byID[id]; ok && c.Name == name {
			return id, true
		}
	}
	return NoneID, false
}

// Ordered returns categories in display order.
func (s *CategoryStore) Ordered() []Category {
	out := make([]Category, 0, len(s.order))
	for _, id := range s.order {
		if c, ok := s.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Add creates a new category and returns its ID. Blank names and names that
// collide case-insensitively with an existing category are rejected.
// A negative colorIndex selects the next palette slot by display position.
func (s *CategoryStore) Add(name, description string, colorIndex int) (CategoryID, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return NoneID, false
	}
	for _, id := range s.order {
		if c, ok := s.byID[id]; ok && strings.EqualFold(c.Name, trimmed) {
			return NoneID, false
		}
	}

	id := CategoryID(s.nextID)
	s.nextID++

	if colorIndex < 0 {
		colorIndex = len(s.order) % constants.PaletteSize
	}
	s.byID[id] = Category{
		ID:          id,
		Name:        trimmed,
		Description: description,
		ColorIndex:  colorIndex % constants.PaletteSize,
		KarmaEffect: 1,
	}
	s.order = append(s.order, id)
	return id, true
}

// DeleteByIndex removes the category at a display position. The none
// category at index 0 is protected. Sessions and grains referencing the
// removed ID become orphaned, never rewritten.
func (s *CategoryStore) DeleteByIndex(index int) (CategoryID, bool) {
	if index <= 0 || index >= len(s.order) {
		return NoneID, false
	}
	removed := s.order[index]
	s.order = append(s.order[:index], s.order[index+1:]...)
	delete(s.byID, removed)
	return removed, true
}

// MoveUp swaps a category with its predecessor. Index 1 cannot move above
// none. Only display order changes; IDs are untouched.
func (s *CategoryStore) MoveUp(index int) bool {
	if index <= 1 || index >= len(s.order) {
		return false
	}
	s.order[index-1], s.order[index] = s.order[index], s.order[index-1]
	return true
}

// MoveDown swaps a category with its successor.
func (s *CategoryStore) MoveDown(index int) bool {
	if index == 0 || index+1 >= len(s.order) {
		return false
	}
	s.order[index], s.order[index+1] = s.order[index+1], s.order[index]
	return true
}

// SetColorByIndex changes the palette slot of the category at a display
// position. The none category keeps its fixed color.
func (s *CategoryStore) SetColorByIndex(index, colorIndex int) bool {
	if index == 0 {
		return false
	}
	id, ok := s.IDAtIndex(index)
	if !ok {
		return false
	}
	c, ok := s.byID[id]
	if !ok {
		return false
	}
	c.ColorIndex = ((colorIndex % constants.PaletteSize) + constants.PaletteSize) % constants.PaletteSize
	s.byID[id] = c
	return true
}

// SetDescriptionByIndex replaces the description of the category at a
// display position.
func (s *CategoryStore) SetDescriptionByIndex(index int, description string) bool {
	id, ok := s.IDAtIndex(index)
	if !ok {
		return false
	}
	c, ok := s.byID[id]
	if !ok {
		return false
	}
	c.Description = description
	s.byID[id] = c
	return true
}

// SetKarmaByIndex changes the karma effect of the category at a display
// position. The none category stays neutral.
func (s *CategoryStore) SetKarmaByIndex(index int, karmaEffect int8) bool {
	if index == 0 {
		return false
	}
	id, ok := s.IDAtIndex(index)
	if !ok {
		return false
	}
	c, ok := s.byID[id]
	if !ok {
		return false
	}
	c.KarmaEffect = karmaEffect
	s.byID[id] = c
	return true
}

// ColorIndex resolves a category's palette slot, reporting false for
// orphaned IDs so callers can fall back instead of failing.
func (s *CategoryStore) ColorIndex(id CategoryID) (int, bool) {
	c, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	return c.ColorIndex, true
}
