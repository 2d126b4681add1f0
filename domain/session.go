package domain

import "time"

// DateFormat and ClockFormat are the layouts used in session records and CSV.
const (
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04:05"
)

// Session is one day's accumulated time for one category. Recording into an
// existing (date, category) pair merges rather than appending, so the log
// stays one row per category per day.
type Session struct {
	ID             int
	Date           string // DateFormat
	CategoryID     CategoryID
	Description    string
	StartTime      string // ClockFormat
	EndTime        string // ClockFormat
	ElapsedSeconds int
}

// Tracker owns the session log, the category store, and the currently
// running session. It is the external "session/report layer" the sand engine
// consumes elapsed-time increments from.
type Tracker struct {
	Sessions  []Session
	Store     *CategoryStore
	SessionID int

	activeCategory CategoryID
	sessionStart   time.Time // zero when no session is running
}

// NewTracker creates a tracker with an empty log and a fresh store.
func NewTracker() *Tracker {
	return &Tracker{
		Store:          NewCategoryStore(),
		activeCategory: NoneID,
	}
}

// ApplyLoadedState replaces the tracker contents with persisted data.
// An active category that no longer resolves falls back to none.
func (t *Tracker) ApplyLoadedState(categories []Category, nextCategoryID uint64, sessions []Session, nextSessionID int) {
	t.Store = FromLoaded(categories, nextCategoryID)
	t.Sessions = sessions
	t.SessionID = nextSessionID
	if _, ok := t.Store.ByID(t.activeCategory); !ok {
		t.activeCategory = NoneID
	}
}

// ActiveCategoryID returns the category the running session accrues to.
func (t *Tracker) ActiveCategoryID() CategoryID {
	return t.activeCategory
}

// ActiveCategoryIndex returns the display position of the active category.
func (t *Tracker) ActiveCategoryIndex() (int, bool) {
	return t.Store.IndexOfID(t.activeCategory)
}

// SetActiveCategoryByIndex switches the active category by display position.
func (t *Tracker) SetActiveCategoryByIndex(index int) bool {
	id, ok := t.Store.IDAtIndex(index)
	if !ok {
		return false
	}
	t.activeCategory = id
	return true
}

// SessionRunning reports whether a session is currently accruing time.
func (t *Tracker) SessionRunning() bool {
	return !t.sessionStart.IsZero()
}

// SessionStart returns the start instant of the running session.
func (t *Tracker) SessionStart() time.Time {
	return t.sessionStart
}

// StartSession begins accruing time to the active category.
func (t *Tracker) StartSession() {
	t.sessionStart = time.Now()
	t.SessionID++
}

// EndSession stops the running session, records its elapsed time, and
// clears the active category's scratch description. Returns the elapsed
// seconds and false when no session was running.
func (t *Tracker) EndSession() (int, bool) {
	if t.sessionStart.IsZero() {
		return 0, false
	}

	elapsed := int(time.Since(t.sessionStart).Seconds())
	catID := t.activeCategory

	description := ""
	if c, ok := t.Store.ByID(catID); ok {
		description = c.Description
	}
	t.RecordSession(catID, description, elapsed)

	if idx, ok := t.Store.IndexOfID(catID); ok {
		t.Store.SetDescriptionByIndex(idx, "")
	}

	t.sessionStart = time.Time{}
	return elapsed, true
}

// RecordSession merges elapsed seconds into today's session for the
// category, creating the row if none exists yet.
func (t *Tracker) RecordSession(catID CategoryID, description string, elapsed int) {
	now := time.Now()
	today := now.Format(DateFormat)
	start := now.Add(-time.Duration(elapsed) * time.Second)

	for i := range t.Sessions {
		s := &t.Sessions[i]
		if s.CategoryID == catID && s.Date == today {
			s.ElapsedSeconds += elapsed
			s.EndTime = now.Format(ClockFormat)
			return
		}
	}

	t.Sessions = append(t.Sessions, Session{
		ID:             t.SessionID,
		Date:           today,
		CategoryID:     catID,
		Description:    description,
		StartTime:      start.Format(ClockFormat),
		EndTime:        now.Format(ClockFormat),
		ElapsedSeconds: elapsed,
	})
}

// TodaysTime sums today's tracked seconds, excluding the none category.
func (t *Tracker) TodaysTime() int {
	today := time.Now().Format(DateFormat)
	total := 0
	for _, s := range t.Sessions {
		if s.Date == today && s.CategoryID != NoneID {
			total += s.ElapsedSeconds
		}
	}
	return total
}

// CategoryTime sums today's tracked seconds for one category by name.
func (t *Tracker) CategoryTime(name string) int {
	catID, ok := t.Store.IDByName(name)
	if !ok {
		catID = NoneID
	}
	today := time.Now().Format(DateFormat)
	total := 0
	for _, s := range t.Sessions {
		if s.Date == today && s.CategoryID == catID {
			total += s.ElapsedSeconds
		}
	}
	return total
}

// TodaysTotalsByCategory returns today's tracked seconds per category,
// including none. Used to reseed the sand pile at startup.
func (t *Tracker) TodaysTotalsByCategory() map[CategoryID]int {
	today := time.Now().Format(DateFormat)
	totals := make(map[CategoryID]int)
	for _, s := range t.Sessions {
		if s.Date == today {
			totals[s.CategoryID] += s.ElapsedSeconds
		}
	}
	return totals
}

// ResetNoneToday drops today's accumulated none time and, if none is the
// active category, restarts its counter.
func (t *Tracker) ResetNoneToday() {
	today := time.Now().Format(DateFormat)
	kept := t.Sessions[:0]
	for _, s := range t.Sessions {
		if s.CategoryID == NoneID && s.Date == today {
			continue
		}
		kept = append(kept, s)
	}
	t.Sessions = kept

	if t.activeCategory == NoneID {
		t.sessionStart = time.Now()
	}
}
