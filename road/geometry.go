package road

import "github.com/lixenwraith/crossroads/vmath"

// Geometry holds the intersection layout every position test derives from.
// Offsets are measured from Center along a heading's unit vector ("along")
// or its right-hand vector ("lateral"). Each heading drives on the lane whose
// centerline sits LaneWidth/2 to its right; the crossing square spans
// ±LaneWidth around Center on both axes.
type Geometry struct {
	Center      vmath.Vec2
	Width       float64
	Height      float64
	Margin      float64
	LaneWidth   float64
	VehicleSize float64
}

// NewGeometry centers the intersection in a width×height area
func NewGeometry(width, height, margin, laneWidth, vehicleSize float64) Geometry {
	return Geometry{
		Center:      vmath.V2(width/2, height/2),
		Width:       width,
		Height:      height,
		Margin:      margin,
		LaneWidth:   laneWidth,
		VehicleSize: vehicleSize,
	}
}

// Along returns the offset of p from Center along heading d
func (g Geometry) Along(p vmath.Vec2, d Direction) float64 {
	return p.Sub(g.Center).Dot(d.Unit())
}

// Lateral returns the offset of p from Center toward d's right-hand side
func (g Geometry) Lateral(p vmath.Vec2, d Direction) float64 {
	return p.Sub(g.Center).Dot(d.Right())
}

// Lead returns the along offset of the leading edge of a vehicle centered at p
func (g Geometry) Lead(p vmath.Vec2, d Direction) float64 {
	return g.Along(p, d) + g.VehicleSize/2
}

// LaneOffset is the lateral offset of every lane centerline
func (g Geometry) LaneOffset() float64 {
	return g.LaneWidth / 2
}

// LanePoint returns the point on d's lane centerline at along offset s
func (g Geometry) LanePoint(d Direction, s float64) vmath.Vec2 {
	return g.Center.Add(d.Right().Scale(g.LaneOffset())).Add(d.Unit().Scale(s))
}

// StopLine returns the leading-edge offset a vehicle heading d must not cross on Red
func (g Geometry) StopLine(d Direction) float64 {
	return -g.LaneWidth
}

// StopLinePoint returns where d's lane centerline meets its stop line
func (g Geometry) StopLinePoint(d Direction) vmath.Vec2 {
	return g.LanePoint(d, g.StopLine(d))
}

// TurnBoundary returns the leading-edge offset at which a vehicle from origin
// performing k switches to its destination heading. At that offset the
// vehicle center lies on the destination lane centerline. Straight has none.
func (g Geometry) TurnBoundary(origin Direction, k TurnKind) (float64, bool) {
	dest := k.Destination(origin)
	if dest == origin {
		return 0, false
	}
	// Destination lane: lateral(p, dest) == LaneOffset. Walking the origin lane,
	// lateral(p, dest) = s * origin·right(dest), since right(origin) ⊥ right(dest)
	s := g.LaneOffset() / origin.Unit().Dot(dest.Right())
	return s + g.VehicleSize/2, true
}

// TurnPoint returns the vehicle center position at which origin/k turns
func (g Geometry) TurnPoint(origin Direction, k TurnKind) (vmath.Vec2, bool) {
	boundary, ok := g.TurnBoundary(origin, k)
	if !ok {
		return vmath.Vec2{}, false
	}
	return g.LanePoint(origin, boundary-g.VehicleSize/2), true
}

// HalfExtent returns the distance from Center to the area edge along d
func (g Geometry) HalfExtent(d Direction) float64 {
	if d == East || d == West {
		return g.Width / 2
	}
	return g.Height / 2
}

// Spawn returns the entry point of d's lane on the upstream area edge
func (g Geometry) Spawn(d Direction) vmath.Vec2 {
	return g.LanePoint(d, -g.HalfExtent(d))
}

// InBounds reports whether p lies strictly inside the area expanded by Margin
func (g Geometry) InBounds(p vmath.Vec2) bool {
	return p.X > -g.Margin && p.X < g.Width+g.Margin &&
		p.Y > -g.Margin && p.Y < g.Height+g.Margin
}

// LightPosition returns where d's signal is drawn: on the curb right of the stop line
func (g Geometry) LightPosition(d Direction, size float64) vmath.Vec2 {
	return g.Center.
		Add(d.Right().Scale(g.LaneWidth + size/2)).
		Add(d.Unit().Scale(g.StopLine(d) - size/2))
}
