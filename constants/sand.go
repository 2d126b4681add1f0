package constants

// Sand Engine Geometry
//
// The simulation grid is a braille dot-grid: every character cell on screen
// covers DotWidth x DotHeight simulation cells, composed into a single
// braille glyph at render time.
const (
	// BrailleBase is the first codepoint of the braille patterns block
	BrailleBase = 0x2800

	// DotWidth is the number of grid columns per character cell
	DotWidth = 2

	// DotHeight is the number of grid rows per character cell
	DotHeight = 4
)

// Sand Engine Defaults
const (
	// DefaultQuantumSeconds is the tracked time represented by one grain
	DefaultQuantumSeconds = 1

	// DefaultMaxGrainsPerTick bounds spawn work per simulation tick
	DefaultMaxGrainsPerTick = 64

	// PhysicsPerSandTick is the number of physics beats per gravity pass
	PhysicsPerSandTick = 2
)
