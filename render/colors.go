package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crossroads/road"
	"github.com/lixenwraith/crossroads/signal"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbRoad       = tcell.NewRGBColor(40, 42, 54)    // Asphalt
	RgbLaneEdge   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbLaneCenter = tcell.NewRGBColor(200, 170, 0)   // Dim yellow

	RgbLightGreen = tcell.NewRGBColor(0, 200, 0)  // Normal Green
	RgbLightRed   = tcell.NewRGBColor(255, 80, 80) // Normal Red

	RgbTurnRight    = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbTurnStraight = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbTurnLeft     = tcell.NewRGBColor(160, 32, 240)  // Purple

	RgbStatusBg     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText   = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbPausedBg     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbMutedBg      = tcell.NewRGBColor(128, 0, 128)   // Dark purple
	RgbMutedText    = tcell.NewRGBColor(255, 255, 255) // White
	RgbOverrideText = tcell.NewRGBColor(200, 50, 50)   // Red for override count
)

// LightColor returns the block color for a signal aspect
func LightColor(s signal.State) tcell.Color {
	if s == signal.Green {
		return RgbLightGreen
	}
	return RgbLightRed
}

// TurnColor returns the body color for a vehicle's maneuver
func TurnColor(k road.TurnKind) tcell.Color {
	switch k {
	case road.RightTurn:
		return RgbTurnRight
	case road.LeftTurn:
		return RgbTurnLeft
	default:
		return RgbTurnStraight
	}
}
