package table

// Table and ball constants for a full-size snooker table scaled to simulation units.
// The playfield is 1000 x 500 units; real table proportions are 3569 x 1778 mm.

const (
	PlayWidth    = 1000.0
	PlayHeight   = 500.0
	CushionWidth = 15.0
	RailWidth    = 30.0
	BallRadius   = 10.0
	PocketRadius = 18.0

	// Pocket mouths: how far each cushion stops short of a pocket.
	CornerGap = PocketRadius
	MiddleGap = PocketRadius * 1.1

	// How far pocket centres sit outside the playfield edge.
	CornerPocketInset = PocketRadius * 0.3
	MiddlePocketInset = PocketRadius * 0.8

	// Snooker markings, as fractions of a 144-inch playfield length.
	BaulkFraction = 29.0 / 144.0
	DFraction     = 11.5 / 144.0
	BlackFraction = 12.75 / 144.0

	NumReds    = 15
	NumColours = 6
	NumBalls   = 1 + NumReds + NumColours

	// Gap left between touching balls in the rack.
	RackGap = 0.05
)
