package road

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crossroads/vmath"
)

func testGeometry() Geometry {
	return NewGeometry(800, 600, 50, 40, 30)
}

func TestDestinationTable(t *testing.T) {
	tests := []struct {
		origin Direction
		kind   TurnKind
		want   Direction
	}{
		{North, Straight, North},
		{West, Straight, West},
		{South, Straight, South},
		{East, Straight, East},
		{North, RightTurn, East},
		{East, RightTurn, South},
		{South, RightTurn, West},
		{West, RightTurn, North},
		{North, LeftTurn, West},
		{West, LeftTurn, South},
		{South, LeftTurn, East},
		{East, LeftTurn, North},
	}

	for _, tt := range tests {
		t.Run(tt.origin.String()+"/"+tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Destination(tt.origin))
		})
	}
}

func TestDirectionCycle(t *testing.T) {
	assert.Equal(t, West, North.Next())
	assert.Equal(t, South, West.Next())
	assert.Equal(t, East, South.Next())
	assert.Equal(t, North, East.Next())

	for _, d := range Directions {
		assert.InDelta(t, 1.0, d.Unit().Length(), 1e-12, d.String())
		assert.InDelta(t, 0.0, d.Unit().Dot(d.Right()), 1e-12, d.String())
	}
	assert.Equal(t, "Direction(9)", Direction(9).String())
	assert.False(t, Direction(4).Valid())
}

func TestTurnKindOf(t *testing.T) {
	assert.Equal(t, Straight, TurnKindOf(0))
	assert.Equal(t, LeftTurn, TurnKindOf(1))
	assert.Equal(t, RightTurn, TurnKindOf(2))
	assert.Equal(t, Straight, TurnKindOf(3))
}

func TestSpawnPoints(t *testing.T) {
	g := testGeometry()

	tests := []struct {
		dir  Direction
		want vmath.Vec2
	}{
		{North, vmath.V2(420, 600)},
		{South, vmath.V2(380, 0)},
		{East, vmath.V2(0, 320)},
		{West, vmath.V2(800, 280)},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got := g.Spawn(tt.dir)
			assert.True(t, got.ApproxEqual(tt.want, 1e-9), "got %+v", got)
			assert.InDelta(t, g.LaneOffset(), g.Lateral(got, tt.dir), 1e-9)
			assert.Less(t, g.Lead(got, tt.dir), g.StopLine(tt.dir))
		})
	}
}

// Every turning vehicle must land on its destination lane centerline,
// past the destination's stop line so it is never gated again.
func TestTurnPointsLandOnDestinationLane(t *testing.T) {
	g := testGeometry()

	for _, origin := range Directions {
		for _, kind := range []TurnKind{LeftTurn, RightTurn} {
			t.Run(origin.String()+"/"+kind.String(), func(t *testing.T) {
				p, ok := g.TurnPoint(origin, kind)
				require.True(t, ok)

				dest := kind.Destination(origin)
				assert.InDelta(t, g.LaneOffset(), g.Lateral(p, origin), 1e-9)
				assert.InDelta(t, g.LaneOffset(), g.Lateral(p, dest), 1e-9)
				assert.GreaterOrEqual(t, g.Lead(p, dest), g.StopLine(dest))
				assert.Greater(t, g.Lead(p, origin), g.StopLine(origin))
			})
		}
	}
}

func TestTurnBoundaryOffsets(t *testing.T) {
	g := testGeometry()

	right, ok := g.TurnBoundary(North, RightTurn)
	require.True(t, ok)
	assert.InDelta(t, -5.0, right, 1e-9)

	left, ok := g.TurnBoundary(North, LeftTurn)
	require.True(t, ok)
	assert.InDelta(t, 35.0, left, 1e-9)

	_, ok = g.TurnBoundary(North, Straight)
	assert.False(t, ok)
}

func TestInBounds(t *testing.T) {
	g := testGeometry()

	assert.True(t, g.InBounds(vmath.V2(0, 0)))
	assert.True(t, g.InBounds(vmath.V2(-49, 649)))
	assert.False(t, g.InBounds(vmath.V2(-50, 300)))
	assert.False(t, g.InBounds(vmath.V2(400, 651)))
	assert.False(t, g.InBounds(vmath.V2(900, 300)))
}

func TestLightPositionOnCurb(t *testing.T) {
	g := testGeometry()
	for _, d := range Directions {
		p := g.LightPosition(d, 24)
		// Right of the lane, upstream of the stop line
		assert.Greater(t, g.Lateral(p, d), g.LaneWidth, d.String())
		assert.Less(t, g.Along(p, d), g.StopLine(d), d.String())
	}
}
