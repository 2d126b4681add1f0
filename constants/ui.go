package constants

// Idle Face
//
// Shown while the neutral "none" category is active. The face escalates as
// idle time grows; thresholds are in seconds and map to Faces[i+1].
var (
	FaceThresholds = []int{120, 300, 600, 1200, 2400, 3600, 5400}

	Faces = []string{
		"(o_o)",
		"(¬_¬)",
		"(O_O)",
		"(⊙_⊙)",
		"(ಠ_ಠ)",
		"(ಥ_ಥ)",
		"(T_T)",
		"(x_x)",
	}

	FaceBlinkClosed = "(-_-)"
	FaceBlinkOpen   = "(o_o)"
)

// Blink Timing (in physics frames)
const (
	BlinkIntervalMinFrames = 150
	BlinkIntervalMaxFrames = 300
	BlinkDurationMinFrames = 10
	BlinkDurationMaxFrames = 17
)
