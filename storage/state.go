package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/lixenwraith/strata/domain"
)

const (
	stateObject      = "state"
	activeSessionKey = "active_session"
	categoryTagsKey  = "category_tags"
)

// ActiveSession is the cross-process record of a running CLI session. It
// lives outside the CSV log until `strata stop` folds it in.
type ActiveSession struct {
	Project      string    `json:"project"`
	Description  string    `json:"description"`
	CategoryID   uint64    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	StartTime    time.Time `json:"start_time"` // UTC
}

// CategoryTagsVersion is the current on-disk tags schema.
const CategoryTagsVersion = 1

// CategoryTags holds free-form tags per category, versioned so future
// layouts can be detected rather than misread.
type CategoryTags struct {
	Version        int                 `json:"version"`
	TagsByCategory map[uint64][]string `json:"tags_by_category"`
}

// NewCategoryTags returns an empty tags state at the current version.
func NewCategoryTags() CategoryTags {
	return CategoryTags{
		Version:        CategoryTagsVersion,
		TagsByCategory: make(map[uint64][]string),
	}
}

// StateStore persists small JSON state blobs through gdata's per-app
// storage. A nil manager degrades to in-memory only: loads return
// defaults and saves are silently dropped, so the app keeps working on
// platforms where the state directory is unavailable.
type StateStore struct {
	manager *gdata.Manager
}

// OpenStateStore opens the app's gdata storage. The returned store is
// usable even when opening fails.
func OpenStateStore() *StateStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("Warning: state storage unavailable: %v (state will not persist)", err)
		return &StateStore{}
	}
	return &StateStore{manager: m}
}

// NewStateStore wraps an existing manager, nil allowed.
func NewStateStore(m *gdata.Manager) *StateStore {
	return &StateStore{manager: m}
}

// LoadActiveSession returns the running CLI session, if any.
func (s *StateStore) LoadActiveSession() (ActiveSession, bool) {
	if s.manager == nil || !s.manager.ObjectPropExists(stateObject, activeSessionKey) {
		return ActiveSession{}, false
	}
	data, err := s.manager.LoadObjectProp(stateObject, activeSessionKey)
	if err != nil {
		log.Printf("Warning: could not load active session: %v", err)
		return ActiveSession{}, false
	}
	var session ActiveSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("Warning: corrupt active session state: %v", err)
		return ActiveSession{}, false
	}
	return session, true
}

// SaveActiveSession records a newly started CLI session.
func (s *StateStore) SaveActiveSession(session ActiveSession) error {
	if s.manager == nil {
		return nil
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	if err := s.manager.SaveObjectProp(stateObject, activeSessionKey, data); err != nil {
		return fmt.Errorf("save active session: %w", err)
	}
	return nil
}

// ClearActiveSession removes the running-session record.
func (s *StateStore) ClearActiveSession() error {
	if s.manager == nil {
		return nil
	}
	return s.manager.DeleteObjectProp(stateObject, activeSessionKey)
}

// LoadCategoryTags returns the stored tags, pruning blanks and tags for
// categories that no longer exist. Version mismatches and corrupt blobs
// fall back to an empty state.
func (s *StateStore) LoadCategoryTags(store *domain.CategoryStore) CategoryTags {
	tags := NewCategoryTags()
	if s.manager == nil || !s.manager.ObjectPropExists(stateObject, categoryTagsKey) {
		return tags
	}
	data, err := s.manager.LoadObjectProp(stateObject, categoryTagsKey)
	if err != nil {
		log.Printf("Warning: could not load category tags: %v", err)
		return tags
	}
	var loaded CategoryTags
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("Warning: corrupt category tags: %v", err)
		return tags
	}
	if loaded.Version != CategoryTagsVersion {
		log.Printf("Warning: unsupported category tags version %d, ignoring saved tags", loaded.Version)
		return tags
	}

	for id, values := range loaded.TagsByCategory {
		if store != nil {
			if _, ok := store.ByID(domain.CategoryID(id)); !ok {
				continue
			}
		}
		kept := values[:0]
		for _, v := range values {
			if v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			tags.TagsByCategory[id] = kept
		}
	}
	return tags
}

// SaveCategoryTags persists the tags state.
func (s *StateStore) SaveCategoryTags(tags CategoryTags) error {
	if s.manager == nil {
		return nil
	}
	tags.Version = CategoryTagsVersion
	data, err := json.MarshalIndent(tags, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal category tags: %w", err)
	}
	if err := s.manager.SaveObjectProp(stateObject, categoryTagsKey, data); err != nil {
		return fmt.Errorf("save category tags: %w", err)
	}
	return nil
}
