package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/strata/constants"
)

// Settings are the user-tunable knobs, persisted as YAML.
type Settings struct {
	// QuantumSeconds is the tracked time one grain represents.
	QuantumSeconds int `yaml:"quantumSeconds"`

	// SpawnPolicy is "round-robin" or "fixed-column".
	SpawnPolicy string `yaml:"spawnPolicy"`

	// MaxGrainsPerTick bounds spawn work per simulation tick.
	MaxGrainsPerTick int `yaml:"maxGrainsPerTick"`

	// TargetFPS caps the render cadence.
	TargetFPS int `yaml:"targetFps"`

	// AudioEnabled turns session chimes on.
	AudioEnabled bool `yaml:"audioEnabled"`
}

// Spawn policy values.
const (
	SpawnRoundRobin  = "round-robin"
	SpawnFixedColumn = "fixed-column"
)

// DefaultSettings returns the stock configuration.
func DefaultSettings() *Settings {
	return &Settings{
		QuantumSeconds:   constants.DefaultQuantumSeconds,
		SpawnPolicy:      SpawnRoundRobin,
		MaxGrainsPerTick: constants.DefaultMaxGrainsPerTick,
		TargetFPS:        constants.TargetFPS,
		AudioEnabled:     false,
	}
}

// sanitize pulls out-of-range values back to defaults so a hand-edited
// file can't wedge the simulation.
func (s *Settings) sanitize() {
	if s.QuantumSeconds < 1 {
		s.QuantumSeconds = constants.DefaultQuantumSeconds
	}
	if s.MaxGrainsPerTick < 1 {
		s.MaxGrainsPerTick = constants.DefaultMaxGrainsPerTick
	}
	if s.TargetFPS < 1 || s.TargetFPS > 120 {
		s.TargetFPS = constants.TargetFPS
	}
	if s.SpawnPolicy != SpawnRoundRobin && s.SpawnPolicy != SpawnFixedColumn {
		s.SpawnPolicy = SpawnRoundRobin
	}
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Manager loads and saves settings through gdata's per-app storage. A
// nil gdata manager degrades to in-memory defaults; configuration
// problems are never fatal.
type Manager struct {
	gdataManager *gdata.Manager
	settings     *Settings
}

// Open creates a manager backed by the app's gdata storage.
func Open(appName string) *Manager {
	gm, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("Warning: settings storage unavailable: %v (using defaults)", err)
		gm = nil
	}
	return NewManager(gm)
}

// NewManager wraps an existing gdata manager, nil allowed.
func NewManager(gm *gdata.Manager) *Manager {
	m := &Manager{
		gdataManager: gm,
		settings:     DefaultSettings(),
	}
	if err := m.Load(); err != nil {
		log.Printf("Warning: failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Load reads settings from storage, keeping defaults when the blob is
// missing or unreadable.
func (m *Manager) Load() error {
	if m.gdataManager == nil {
		m.settings = DefaultSettings()
		return nil
	}
	if !m.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = DefaultSettings()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	loaded.sanitize()
	m.settings = loaded
	return nil
}

// Save writes the current settings. A nil backend is a quiet no-op.
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Settings returns the live settings value.
func (m *Manager) Settings() *Settings {
	return m.settings
}

// Update applies fn to the settings, sanitizes, and persists.
func (m *Manager) Update(fn func(*Settings)) error {
	fn(m.settings)
	m.settings.sanitize()
	return m.Save()
}
