package contract

import "fmt"

// Pad identifies one of the two signature areas.
type Pad string

const (
	PadPartyOne Pad = "party_one"
	PadPartyTwo Pad = "party_two"
)

// ParsePad validates a pad name.
func ParsePad(name string) (Pad, error) {
	switch Pad(name) {
	case PadPartyOne, PadPartyTwo:
		return Pad(name), nil
	}
	return "", fmt.Errorf("%w: unknown pad %q", ErrInvalidSignature, name)
}

// Point is a pen position normalised to the pad's unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pen movement.
type Stroke struct {
	Points []Point `json:"points"`
}

// Validate checks the stroke has points inside the unit square.
func (s Stroke) Validate() error {
	if len(s.Points) == 0 {
		return fmt.Errorf("%w: empty stroke", ErrInvalidSignature)
	}
	for _, p := range s.Points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return fmt.Errorf("%w: point (%g, %g) outside pad", ErrInvalidSignature, p.X, p.Y)
		}
	}
	return nil
}

// Signatures holds the strokes drawn on both pads.
type Signatures struct {
	PartyOne []Stroke `json:"party_one"`
	PartyTwo []Stroke `json:"party_two"`
}

// Strokes returns the strokes drawn on pad.
func (s Signatures) Strokes(pad Pad) []Stroke {
	if pad == PadPartyTwo {
		return s.PartyTwo
	}
	return s.PartyOne
}

// Add appends a validated stroke to pad.
func (s *Signatures) Add(pad Pad, stroke Stroke) error {
	if _, err := ParsePad(string(pad)); err != nil {
		return err
	}
	if err := stroke.Validate(); err != nil {
		return err
	}
	if pad == PadPartyTwo {
		s.PartyTwo = append(s.PartyTwo, stroke)
	} else {
		s.PartyOne = append(s.PartyOne, stroke)
	}
	return nil
}

// Clear removes every stroke from pad, leaving the other pad untouched.
func (s *Signatures) Clear(pad Pad) error {
	if _, err := ParsePad(string(pad)); err != nil {
		return err
	}
	if pad == PadPartyTwo {
		s.PartyTwo = nil
	} else {
		s.PartyOne = nil
	}
	return nil
}

// Empty reports whether neither pad holds a stroke.
func (s Signatures) Empty() bool {
	return len(s.PartyOne) == 0 && len(s.PartyTwo) == 0
}
