package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity applied by the player controller (pixels/sec^2). The physics
	// world itself is configured per level and defaults to zero gravity so
	// floaty bodies (ghosts, the boss) can self-steer.
	Gravity = 980.0

	// MaxFrameDT clamps a stalled frame to a single 50ms step.
	MaxFrameDT = 1.0 / 20.0
)
