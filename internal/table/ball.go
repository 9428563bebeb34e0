package table

import (
	"fmt"
	"strconv"
	"strings"
)

// BallKind distinguishes the cue ball, reds and colours.
type BallKind uint8

const (
	KindNone BallKind = iota
	KindCue
	KindRed
	KindColour
)

// Colour is one of the six snooker colours.
type Colour uint8

const (
	Yellow Colour = iota + 1
	Green
	Brown
	Blue
	Pink
	Black
)

// Colours lists the colours in ascending value order.
var Colours = [NumColours]Colour{Yellow, Green, Brown, Blue, Pink, Black}

var colourNames = map[Colour]string{
	Yellow: "yellow",
	Green:  "green",
	Brown:  "brown",
	Blue:   "blue",
	Pink:   "pink",
	Black:  "black",
}

func (c Colour) String() string {
	if name, ok := colourNames[c]; ok {
		return name
	}
	return "colour(" + strconv.Itoa(int(c)) + ")"
}

// Value returns the points shown next to the colour in the legend.
func (c Colour) Value() int {
	if c < Yellow || c > Black {
		return 0
	}
	return int(c) + 1
}

// BallID identifies a ball for the lifetime of a session.
// The zero value identifies nothing and is used for cushions, rails and pockets.
type BallID struct {
	Kind   BallKind
	Red    int
	Colour Colour
}

// Cue returns the cue ball id.
func Cue() BallID { return BallID{Kind: KindCue} }

// Red returns the id of red ball n (1-based).
func Red(n int) BallID { return BallID{Kind: KindRed, Red: n} }

// ColourBall returns the id of a colour ball.
func ColourBall(c Colour) BallID { return BallID{Kind: KindColour, Colour: c} }

func (id BallID) IsZero() bool { return id.Kind == KindNone }
func (id BallID) IsCue() bool  { return id.Kind == KindCue }

// Value is 1 for a red, the colour value for a colour and 0 for the cue ball.
func (id BallID) Value() int {
	switch id.Kind {
	case KindRed:
		return 1
	case KindColour:
		return id.Colour.Value()
	}
	return 0
}

// String returns the canonical label: "cue", "red-3", "yellow".
func (id BallID) String() string {
	switch id.Kind {
	case KindCue:
		return "cue"
	case KindRed:
		return "red-" + strconv.Itoa(id.Red)
	case KindColour:
		return id.Colour.String()
	}
	return ""
}

func (id BallID) MarshalText() ([]byte, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("table: cannot marshal empty ball id")
	}
	return []byte(id.String()), nil
}

func (id *BallID) UnmarshalText(text []byte) error {
	parsed, err := ParseBallID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseBallID parses a canonical ball label.
func ParseBallID(s string) (BallID, error) {
	if s == "cue" {
		return Cue(), nil
	}
	if rest, ok := strings.CutPrefix(s, "red-"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > NumReds {
			return BallID{}, fmt.Errorf("table: invalid red ball %q", s)
		}
		return Red(n), nil
	}
	for c, name := range colourNames {
		if name == s {
			return ColourBall(c), nil
		}
	}
	return BallID{}, fmt.Errorf("table: unknown ball %q", s)
}
