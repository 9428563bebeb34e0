package game

import (
	"log"
	"time"

	"github.com/playmatatu/snooker/internal/physics"
	"github.com/playmatatu/snooker/internal/table"
)

// Pocketing removes balls that touch a pocket and keeps the pot history.
type Pocketing struct {
	world     *physics.World
	pockets   map[*physics.Body]table.Pocket
	potted    []table.BallID
	cueInHand bool
	onPot     func(Event)
}

// NewPocketing subscribes to the world's contact-start notifications.
func NewPocketing(w *physics.World, onPot func(Event)) *Pocketing {
	p := &Pocketing{
		world:   w,
		pockets: make(map[*physics.Body]table.Pocket),
		onPot:   onPot,
	}
	w.OnContactStart(p.handleContact)
	return p
}

// AddPocket creates the sensor body for a pocket and adds it to the world.
func (p *Pocketing) AddPocket(pocket table.Pocket) *physics.Body {
	sensor := physics.NewSensorCircle("pocket-"+pocket.Name, pocket.Position, pocket.Radius)
	p.pockets[sensor] = pocket
	p.world.AddBody(sensor)
	return sensor
}

func (p *Pocketing) handleContact(ev physics.ContactEvent) {
	pocket, ok := p.pockets[ev.Sensor]
	if !ok || !ev.Body.Dynamic() || ev.Body.Ball.IsZero() {
		return
	}
	if !p.world.RemoveBody(ev.Body) {
		return
	}
	ev.Body.Stop()

	id := ev.Body.Ball
	e := Event{Type: EventBallPotted, Ball: &id, Pocket: &pocket, Tick: ev.Tick, Time: time.Now()}
	if id.IsCue() {
		p.cueInHand = true
		e.Type = EventCuePotted
		log.Printf("[POCKET] Cue ball potted in %s at tick %d", pocket.Name, ev.Tick)
	} else {
		p.potted = append(p.potted, id)
		log.Printf("[POCKET] %s potted in %s at tick %d", id, pocket.Name, ev.Tick)
	}
	if p.onPot != nil {
		p.onPot(e)
	}
}

// Potted returns the potted object balls in pot order.
func (p *Pocketing) Potted() []table.BallID {
	out := make([]table.BallID, len(p.potted))
	copy(out, p.potted)
	return out
}

func (p *Pocketing) CueBallInHand() bool { return p.cueInHand }

func (p *Pocketing) clearCueInHand() { p.cueInHand = false }

func (p *Pocketing) reset() {
	p.potted = nil
	p.cueInHand = false
}
