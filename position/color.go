package position

import (
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Color is the closed two-valued side tag. Text is converted with ParseColor at API
// boundaries; nothing past that point branches on strings.
type Color uint8

const (
	White Color = iota
	Black
)

// ParseColor accepts "white" or "black" in any case, surrounding space ignored.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, &InvalidColorError{Input: s}
}

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) oracle() gm.Color {
	if c == Black {
		return gm.Black
	}
	return gm.White
}
