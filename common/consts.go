package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// DefaultFrameDuration is the time one animation frame stays on screen.
	DefaultFrameDuration = 1.0 / 8.0
)
