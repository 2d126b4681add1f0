package constants

import "time"

// Host Loop Cadences
const (
	// SpawnInterval is how often accumulated session time is fed to the spawner
	SpawnInterval = 1 * time.Second

	// PhysicsInterval is the base physics beat
	PhysicsInterval = 32 * time.Millisecond

	// TargetFPS caps terminal redraw rate
	TargetFPS = 24

	// AutosaveInterval is how often sessions are flushed to disk while running
	AutosaveInterval = 60 * time.Second
)
