package parameter

// Physics World Defaults
const (
	// Gravity along Z, the up axis of the scene
	GravityZ = -9.81

	// BallRadius and BallMass of every falling ball
	BallRadius = 1.0
	BallMass   = 1.0

	// Restitution and Friction shared by every body of the default scene
	Restitution = 0.3
	Friction    = 0.6
)

// Scene Layout
const (
	// BallCount is the number of falling balls
	BallCount = 100

	// BallSpacing is the vertical gap between stacked ball centers
	BallSpacing = 5.0

	// BallJitter bounds the random lateral offset of each ball
	BallJitter = 1.0

	// BoxHalfExtent is the distance from the box center to each wall and to the floor
	BoxHalfExtent = 15.0

	// ObstacleRadius, ObstacleX and ObstacleZ place the static ball the stack falls onto
	ObstacleRadius = 1.0
	ObstacleX      = 0.1
	ObstacleZ      = -5.0

	// SceneSeed is the default jitter seed
	SceneSeed = 1
)
