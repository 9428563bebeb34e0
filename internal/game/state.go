package game

import (
	"github.com/playmatatu/snooker/internal/physics"
	"github.com/playmatatu/snooker/internal/table"
)

// BallState is a ball's position and motion for serialization.
type BallState struct {
	Ball            table.BallID `json:"ball"`
	Position        physics.Vec2 `json:"position"`
	Velocity        physics.Vec2 `json:"velocity"`
	Angle           float64      `json:"angle"`
	AngularVelocity float64      `json:"angular_velocity"`
	Radius          float64      `json:"radius"`
}

// Snapshot is the read-only view of the table handed to renderers.
type Snapshot struct {
	Tick          uint64           `json:"tick"`
	Balls         []BallState      `json:"balls"`
	ShotState     ShotState        `json:"shot_state"`
	Gesture       *Gesture         `json:"gesture,omitempty"`
	Power         float64          `json:"power"`
	Potted        []table.BallID   `json:"potted"`
	CueBallInHand bool             `json:"cue_ball_in_hand"`
	AtRest        bool             `json:"at_rest"`
	Settings      physics.Settings `json:"settings"`
}

// Ball returns the state of ball id, if it is on the table.
func (s *Snapshot) Ball(id table.BallID) (BallState, bool) {
	for _, b := range s.Balls {
		if b.Ball == id {
			return b, true
		}
	}
	return BallState{}, false
}
