package game

import (
	"context"
	"time"

	"github.com/playmatatu/snooker/internal/table"
)

// EventType names something that happened on the table.
type EventType string

const (
	EventBallPotted   EventType = "ball_potted"
	EventCuePotted    EventType = "cue_ball_potted"
	EventCueReset     EventType = "cue_ball_reset"
	EventCuePlaced    EventType = "cue_ball_placed"
	EventGameReset    EventType = "game_reset"
	EventShot         EventType = "shot"
	EventSettings     EventType = "settings_changed"
	EventTableSettled EventType = "table_settled"
)

// Event is published to observers outside the simulation.
type Event struct {
	Type   EventType     `json:"type"`
	Ball   *table.BallID `json:"ball,omitempty"`
	Pocket *table.Pocket `json:"pocket,omitempty"`
	Tick   uint64        `json:"tick"`
	Power  float64       `json:"power,omitempty"`
	Time   time.Time     `json:"time"`
}

// Publisher delivers events to something outside the process.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
