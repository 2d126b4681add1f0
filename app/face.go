package app

import (
	"time"

	"github.com/lixenwraith/strata/constants"
)

// idleFace picks the face shown in place of a category name while the
// none category is active. Faces escalate with idle time; a periodic
// blink overrides them briefly.
//
// blinkState encodes the phase: positive counts physics frames down to
// the next blink, negative holds the eyes closed, zero is quiescent.
func (a *App) idleFace() string {
	if a.blinkState < 0 {
		return constants.FaceBlinkClosed
	}
	if a.blinkState > 0 {
		return constants.FaceBlinkOpen
	}

	idleSeconds := 0
	if a.tracker.SessionRunning() {
		idleSeconds = int(time.Since(a.tracker.SessionStart()).Seconds())
	}
	return faceForIdle(idleSeconds)
}

func faceForIdle(idleSeconds int) string {
	face := constants.Faces[0]
	for i, threshold := range constants.FaceThresholds {
		if idleSeconds >= threshold {
			face = constants.Faces[i+1]
		}
	}
	return face
}

func (a *App) updateBlink() {
	switch {
	case a.blinkState < 0:
		a.blinkState--
		duration := constants.BlinkDurationMinFrames +
			a.faceRng.Intn(constants.BlinkDurationMaxFrames-constants.BlinkDurationMinFrames)
		if a.blinkState < -duration {
			a.blinkState = a.nextBlinkInterval()
		}
		a.needRender = true
	case a.blinkState > 0:
		a.blinkState--
		if a.blinkState == 0 {
			a.blinkState = -1
			a.needRender = true
		}
	}
}

func (a *App) nextBlinkInterval() int {
	return constants.BlinkIntervalMinFrames +
		a.faceRng.Intn(constants.BlinkIntervalMaxFrames-constants.BlinkIntervalMinFrames)
}
