package constants

// UI Layout Constants
const (
	// StatusBarHeight is the number of terminal rows reserved at the bottom
	StatusBarHeight = 1

	// PauseText is shown in the status bar while paused
	PauseText = " PAUSED "

	// MutedText is shown in the status bar while sound is off
	MutedText = " MUTED "
)

// Glyphs
const (
	GlyphVehicle   = '█'
	GlyphLight     = '●'
	GlyphLaneEdge  = '│'
	GlyphLaneEdgeH = '─'
	GlyphCenter    = '┊'
	GlyphCenterH   = '┈'
)
