package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/strata/audio"
	"github.com/lixenwraith/strata/config"
	"github.com/lixenwraith/strata/constants"
	"github.com/lixenwraith/strata/domain"
	"github.com/lixenwraith/strata/render"
	"github.com/lixenwraith/strata/sand"
	"github.com/lixenwraith/strata/storage"
	"github.com/lixenwraith/strata/vmath"
)

type uiMode int

const (
	modeMain uiMode = iota
	modeCategoryModal
	modeReportModal
)

// App owns the screen, the sand engine, and the tracker, and runs the
// interactive loop. All mutation happens on the loop goroutine.
// sandCatchUpTicks bounds how many sand ticks a stalled loop may replay
// in one beat before the clock drops the backlog.
const sandCatchUpTicks = 4

type App struct {
	screen   tcell.Screen
	tracker  *domain.Tracker
	engine   *sand.Engine
	renderer *sand.Renderer
	simClock *sand.SimulationClock
	cfg      *config.Manager
	state    *storage.StateStore
	chimes   *audio.Chimes

	// Blinking and the idle face are presentation only, so they get their
	// own rng and never touch the engine's.
	faceRng    *vmath.FastRand
	blinkState int

	mode uiMode

	// Category modal state
	selected    int
	modalScroll int
	newName     string
	colorIndex  int
	modalDesc   string
	tags        storage.CategoryTags
	tagIndex    int // -1 when not cycling tags

	// Report modal state
	reportSel    int
	reportScroll int
	reportPeriod domain.Period
	inLogs       bool
	logsCat      domain.CategoryID
	logSel       int
	logScroll    int
	showHelp     bool

	needRender bool
}

// New loads persisted data, seeds the sand grid from today's totals, and
// starts an idle session on the none category.
func New(screen tcell.Screen) (*App, error) {
	cfg := config.Open("strata")
	settings := cfg.Settings()

	tracker := domain.NewTracker()
	loadedCats := storage.LoadCategories(storage.CategoriesPath())
	loadedSessions := storage.LoadSessions(storage.TimeLogPath(), loadedCats.Categories)
	tracker.ApplyLoadedState(loadedCats.Categories, loadedCats.NextCategoryID,
		loadedSessions.Sessions, loadedSessions.NextSessionID)

	state := storage.OpenStateStore()
	tags := state.LoadCategoryTags(tracker.Store)

	w, h := screen.Size()
	gw, gh := render.GridSizeFor(w, h-2)
	engine, err := sand.NewEngine(gw, gh, settings.QuantumSeconds, uint64(time.Now().UnixNano()))
	if err != nil {
		return nil, err
	}
	if settings.SpawnPolicy == config.SpawnFixedColumn {
		engine.SetPolicy(sand.PolicyFixedColumn)
	}
	engine.SetMaxPerTick(settings.MaxGrainsPerTick)
	engine.SeedFromTotals(tracker.TodaysTotalsByCategory())

	chimes := audio.NewChimes()
	if settings.AudioEnabled {
		chimes.Enable()
	}

	a := &App{
		screen:     screen,
		tracker:    tracker,
		engine:     engine,
		renderer:   render.NewRenderer(),
		simClock:   sand.NewSimulationClock(constants.PhysicsInterval*constants.PhysicsPerSandTick, sandCatchUpTicks),
		cfg:        cfg,
		state:      state,
		chimes:     chimes,
		faceRng:    vmath.NewFastRand(uint64(time.Now().UnixNano()) | 1),
		tags:       tags,
		tagIndex:   -1,
		needRender: true,
	}

	a.tracker.StartSession()
	if a.activeIndex() == 0 {
		a.blinkState = a.nextBlinkInterval()
	}
	return a, nil
}

func (a *App) activeIndex() int {
	idx, ok := a.tracker.ActiveCategoryIndex()
	if !ok {
		return 0
	}
	return idx
}

// Run drives the loop until the user quits, then ends the session and
// flushes everything to disk.
func (a *App) Run() {
	ticker := time.NewTicker(constants.PhysicsInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	renderRate := time.Second / time.Duration(a.cfg.Settings().TargetFPS)
	lastSpawn := time.Now()
	lastTick := time.Now()
	lastRender := time.Now()
	lastSave := time.Now()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				a.shutdown()
				return
			}

		case <-ticker.C:
			now := time.Now()

			var beats int
			beats, lastSpawn = consumeSpawnBeats(lastSpawn, now)
			if beats > 0 {
				if a.tracker.SessionRunning() {
					seconds := int(time.Duration(beats) * constants.SpawnInterval / time.Second)
					a.engine.Spawner().AccumulateElapsed(a.tracker.ActiveCategoryID(), seconds)
				}
				a.needRender = true // the clock readout ticks even when idle
			}

			a.stepSimulation(now.Sub(lastTick))
			lastTick = now
			if a.activeIndex() == 0 {
				a.updateBlink()
			}

			if time.Since(lastSave) >= constants.AutosaveInterval {
				a.persistSessions()
				lastSave = time.Now()
			}

			if a.needRender && time.Since(lastRender) >= renderRate {
				a.draw()
				a.needRender = false
				lastRender = time.Now()
			}
		}
	}
}

// consumeSpawnBeats returns the whole spawn intervals between last and
// now, advancing last by exactly that many intervals so fractional
// remainders carry into the next beat instead of being discarded.
func consumeSpawnBeats(last, now time.Time) (int, time.Time) {
	beats := int(now.Sub(last) / constants.SpawnInterval)
	if beats <= 0 {
		return 0, last
	}
	return beats, last.Add(time.Duration(beats) * constants.SpawnInterval)
}

// stepSimulation advances the simulation clock by the loop's elapsed
// time and runs every due sand tick, bounded by the clock's catch-up
// cap. Returns the number of ticks run.
func (a *App) stepSimulation(elapsed time.Duration) int {
	ticks := a.simClock.Advance(elapsed)
	for i := 0; i < ticks; i++ {
		stats := a.engine.Step()
		if stats.Spawned > 0 || stats.Moved > 0 {
			a.needRender = true
		}
	}
	return ticks
}

// handleEvent returns false when the app should exit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.handleResize()
	}
	return true
}

func (a *App) handleResize() {
	a.screen.Sync()
	w, h := a.screen.Size()
	gw, gh := render.GridSizeFor(w, h-2)
	if gw != a.engine.Grid().Width() || gh != a.engine.Grid().Height() {
		a.engine.Resize(gw, gh)
	}
	a.needRender = true
}

func (a *App) shutdown() {
	a.tracker.EndSession()
	a.persistSessions()
	a.persistCategories()
	a.chimes.Disable()
}

func (a *App) persistCategories() {
	storage.SaveCategories(storage.CategoriesPath(), a.tracker.Store.Ordered())
}

func (a *App) persistSessions() {
	storage.SaveSessions(storage.TimeLogPath(), a.tracker.Sessions, a.tracker.Store.Ordered())
}

func (a *App) persistTags() {
	a.state.SaveCategoryTags(a.tags)
}

// switchCategory ends the running session, activates the category at the
// given display index, and starts a fresh session on it. The chime
// distinguishes picking up work, swapping tasks, and dropping to idle.
func (a *App) switchCategory(index int) {
	prev := a.activeIndex()
	if prev == index {
		return
	}
	a.tracker.EndSession()
	a.persistSessions()
	if a.tracker.SetActiveCategoryByIndex(index) {
		a.tracker.StartSession()
		switch {
		case index == 0:
			a.chimes.SessionStop()
		case prev == 0:
			a.chimes.SessionStart()
		default:
			a.chimes.CategorySwitch()
		}
	}
	if a.activeIndex() == 0 {
		a.blinkState = a.nextBlinkInterval()
	}
}
