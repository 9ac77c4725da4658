package constants

// Area defaults in world units
const (
	AreaWidth  = 800.0
	AreaHeight = 600.0

	// EvictionMargin is how far past the area edge a vehicle may travel before removal
	EvictionMargin = 50.0
)

// Road geometry in world units
const (
	// LaneWidth is the width of one lane; each road carries one lane per heading
	LaneWidth = 40.0

	// VehicleSize is the side of the square vehicle footprint
	VehicleSize = 30.0

	// LightSize is the side of the square drawn for a traffic light
	LightSize = 24.0
)

// Vehicle kinematics
const (
	// VehicleSpeed is the cruising speed in world units per second (2 units per tick)
	VehicleSpeed = 100.0

	// MinFollowDistance is the minimum center-to-center gap to the vehicle ahead
	MinFollowDistance = 40.0

	// LateralTolerance is the perpendicular distance under which two vehicles share a lane
	LateralTolerance = 15.0

	// SpawnClearance is the gap the last vehicle must clear before another enters the lane
	SpawnClearance = MinFollowDistance
)
