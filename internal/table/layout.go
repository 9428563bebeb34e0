package table

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle used for rails and cushions.
type Rect struct {
	Name string     `json:"name"`
	Min  mgl64.Vec2 `json:"min"`
	Max  mgl64.Vec2 `json:"max"`
}

func (r Rect) Center() mgl64.Vec2      { return r.Min.Add(r.Max).Mul(0.5) }
func (r Rect) HalfExtents() mgl64.Vec2 { return r.Max.Sub(r.Min).Mul(0.5) }
func (r Rect) Width() float64          { return r.Max[0] - r.Min[0] }
func (r Rect) Height() float64         { return r.Max[1] - r.Min[1] }

// Pocket is one of the six pocket sensors.
type Pocket struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Position mgl64.Vec2 `json:"position"`
	Radius   float64    `json:"radius"`
}

// Spot is the starting position of a ball.
type Spot struct {
	Ball     BallID     `json:"ball"`
	Position mgl64.Vec2 `json:"position"`
}

// Dimensions are the inputs the layout is computed from.
type Dimensions struct {
	PlayWidth    float64 `json:"play_width"`
	PlayHeight   float64 `json:"play_height"`
	Cushion      float64 `json:"cushion"`
	Rail         float64 `json:"rail"`
	BallRadius   float64 `json:"ball_radius"`
	PocketRadius float64 `json:"pocket_radius"`
}

// StandardDimensions returns the default table.
func StandardDimensions() Dimensions {
	return Dimensions{
		PlayWidth:    PlayWidth,
		PlayHeight:   PlayHeight,
		Cushion:      CushionWidth,
		Rail:         RailWidth,
		BallRadius:   BallRadius,
		PocketRadius: PocketRadius,
	}
}

// Layout holds the complete, immutable table geometry.
type Layout struct {
	Dimensions
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Playfield Rect     `json:"playfield"`
	Rails     []Rect   `json:"rails"`
	Cushions  []Rect   `json:"cushions"`
	Pockets   []Pocket `json:"pockets"`
	BaulkX    float64  `json:"baulk_x"`
	DRadius   float64  `json:"d_radius"`

	CueSpot mgl64.Vec2 `json:"cue_spot"`
	Colours []Spot     `json:"colours"`
	Reds    []Spot     `json:"reds"`
}

// NewLayout computes the table geometry from its dimensions.
func NewLayout(d Dimensions) *Layout {
	play := PlayfieldRect(d)
	w := play.Max[0] + d.Cushion + d.Rail
	h := play.Max[1] + d.Cushion + d.Rail

	l := &Layout{
		Dimensions: d,
		Width:      w,
		Height:     h,
		Playfield:  play,
		Rails:      RailRects(w, h, d.Rail),
		Cushions:   CushionRects(d),
		Pockets:    PocketCentres(d),
		BaulkX:     play.Min[0] + d.PlayWidth*BaulkFraction,
		DRadius:    d.PlayWidth * DFraction,
	}

	cy := play.Center()[1]
	// Between brown and yellow, off the line to the pink.
	l.CueSpot = mgl64.Vec2{l.BaulkX - l.DRadius/2, cy + l.DRadius/2}
	l.Colours = ColourSpots(d)
	l.Reds = RedTriangle(l.ColourSpot(Pink), d.BallRadius)
	return l
}

// StandardLayout returns the layout for StandardDimensions.
func StandardLayout() *Layout {
	return NewLayout(StandardDimensions())
}

// PlayfieldRect returns the cloth area inside the cushions.
func PlayfieldRect(d Dimensions) Rect {
	left := d.Rail + d.Cushion
	top := d.Rail + d.Cushion
	return Rect{
		Name: "playfield",
		Min:  mgl64.Vec2{left, top},
		Max:  mgl64.Vec2{left + d.PlayWidth, top + d.PlayHeight},
	}
}

// RailRects returns the four outer rails for a w x h table.
func RailRects(w, h, rail float64) []Rect {
	return []Rect{
		{Name: "rail-top", Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{w, rail}},
		{Name: "rail-bottom", Min: mgl64.Vec2{0, h - rail}, Max: mgl64.Vec2{w, h}},
		{Name: "rail-left", Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{rail, h}},
		{Name: "rail-right", Min: mgl64.Vec2{w - rail, 0}, Max: mgl64.Vec2{w, h}},
	}
}

// CushionRects returns the six cushion segments. Each one stops short of
// the pockets at its ends, leaving the pocket mouths open.
func CushionRects(d Dimensions) []Rect {
	play := PlayfieldRect(d)
	left, top := play.Min[0], play.Min[1]
	right, bottom := play.Max[0], play.Max[1]
	cx := play.Center()[0]
	c := d.Cushion
	corner := d.PocketRadius * (CornerGap / PocketRadius)
	middle := d.PocketRadius * (MiddleGap / PocketRadius)

	return []Rect{
		{Name: "cushion-top-left", Min: mgl64.Vec2{left + corner, top - c}, Max: mgl64.Vec2{cx - middle, top}},
		{Name: "cushion-top-right", Min: mgl64.Vec2{cx + middle, top - c}, Max: mgl64.Vec2{right - corner, top}},
		{Name: "cushion-bottom-left", Min: mgl64.Vec2{left + corner, bottom}, Max: mgl64.Vec2{cx - middle, bottom + c}},
		{Name: "cushion-bottom-right", Min: mgl64.Vec2{cx + middle, bottom}, Max: mgl64.Vec2{right - corner, bottom + c}},
		{Name: "cushion-left", Min: mgl64.Vec2{left - c, top + corner}, Max: mgl64.Vec2{left, bottom - corner}},
		{Name: "cushion-right", Min: mgl64.Vec2{right, top + corner}, Max: mgl64.Vec2{right + c, bottom - corner}},
	}
}

// PocketCentres returns the six pockets: top row left to right, then bottom row.
func PocketCentres(d Dimensions) []Pocket {
	play := PlayfieldRect(d)
	left, top := play.Min[0], play.Min[1]
	right, bottom := play.Max[0], play.Max[1]
	cx := play.Center()[0]
	pr := d.PocketRadius
	ci := pr * (CornerPocketInset / PocketRadius)
	mi := pr * (MiddlePocketInset / PocketRadius)

	return []Pocket{
		{ID: 0, Name: "top-left", Position: mgl64.Vec2{left - ci, top - ci}, Radius: pr},
		{ID: 1, Name: "top-middle", Position: mgl64.Vec2{cx, top - mi}, Radius: pr},
		{ID: 2, Name: "top-right", Position: mgl64.Vec2{right + ci, top - ci}, Radius: pr},
		{ID: 3, Name: "bottom-left", Position: mgl64.Vec2{left - ci, bottom + ci}, Radius: pr},
		{ID: 4, Name: "bottom-middle", Position: mgl64.Vec2{cx, bottom + mi}, Radius: pr},
		{ID: 5, Name: "bottom-right", Position: mgl64.Vec2{right + ci, bottom + ci}, Radius: pr},
	}
}

// ColourSpots returns the six colour spots. Baulk is on the left; looking up
// the table from baulk, yellow is on the right of the D (larger y).
func ColourSpots(d Dimensions) []Spot {
	play := PlayfieldRect(d)
	center := play.Center()
	baulkX := play.Min[0] + d.PlayWidth*BaulkFraction
	dr := d.PlayWidth * DFraction

	return []Spot{
		{Ball: ColourBall(Yellow), Position: mgl64.Vec2{baulkX, center[1] + dr}},
		{Ball: ColourBall(Green), Position: mgl64.Vec2{baulkX, center[1] - dr}},
		{Ball: ColourBall(Brown), Position: mgl64.Vec2{baulkX, center[1]}},
		{Ball: ColourBall(Blue), Position: center},
		{Ball: ColourBall(Pink), Position: mgl64.Vec2{play.Min[0] + 0.75*d.PlayWidth, center[1]}},
		{Ball: ColourBall(Black), Position: mgl64.Vec2{play.Max[0] - d.PlayWidth*BlackFraction, center[1]}},
	}
}

// RedTriangle racks the fifteen reds in five rows behind the pink, apex first.
// Reds are numbered row by row starting at the apex.
func RedTriangle(pink mgl64.Vec2, radius float64) []Spot {
	spacing := 2 * radius * (1 + RackGap)
	rowStep := math.Sqrt(3) / 2 * spacing
	apex := pink[0] + spacing

	reds := make([]Spot, 0, NumReds)
	n := 1
	for row := 0; row < 5; row++ {
		x := apex + float64(row)*rowStep
		for j := 0; j <= row; j++ {
			y := pink[1] + (float64(j)-float64(row)/2)*spacing
			reds = append(reds, Spot{Ball: Red(n), Position: mgl64.Vec2{x, y}})
			n++
		}
	}
	return reds
}

// ColourSpot returns the spot of colour c.
func (l *Layout) ColourSpot(c Colour) mgl64.Vec2 {
	for _, s := range l.Colours {
		if s.Ball.Colour == c {
			return s.Position
		}
	}
	return l.Playfield.Center()
}

// Rack returns every starting spot: cue, reds 1..15, then the colours.
func (l *Layout) Rack() []Spot {
	spots := make([]Spot, 0, NumBalls)
	spots = append(spots, Spot{Ball: Cue(), Position: l.CueSpot})
	spots = append(spots, l.Reds...)
	spots = append(spots, l.Colours...)
	return spots
}

// OnCloth reports whether a ball of the given radius centred at p lies
// entirely inside the playfield.
func (l *Layout) OnCloth(p mgl64.Vec2, radius float64) bool {
	return p[0]-radius >= l.Playfield.Min[0] && p[0]+radius <= l.Playfield.Max[0] &&
		p[1]-radius >= l.Playfield.Min[1] && p[1]+radius <= l.Playfield.Max[1]
}

// NearPocket reports whether a ball of the given radius at p would touch a
// pocket sensor.
func (l *Layout) NearPocket(p mgl64.Vec2, radius float64) bool {
	for _, pk := range l.Pockets {
		if p.Sub(pk.Position).Len() < pk.Radius+radius {
			return true
		}
	}
	return false
}

// InD reports whether p lies inside the D: behind the baulk line and within
// the semicircle centred on the brown spot.
func (l *Layout) InD(p mgl64.Vec2) bool {
	if p[0] > l.BaulkX {
		return false
	}
	brown := l.ColourSpot(Brown)
	return p.Sub(brown).Len() <= l.DRadius
}
