package surface

import (
	"image/color"
	"math"
)

// Color is a packed 32-bit ARGB value: alpha in bits 24-31, then red, green
// and blue.
type Color uint32

const (
	White     Color = 0xFFFFFFFF
	Black     Color = 0xFF000000
	Red       Color = 0xFFFF0000
	Green     Color = 0xFF00FF00
	Blue      Color = 0xFF0000FF
	Yellow    Color = 0xFFFFFF00
	Magenta   Color = 0xFFFF00FF
	Cyan      Color = 0xFF00FFFF
	Grey      Color = 0xFF666666
	LightGrey Color = 0xFFAAAAAA
)

func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func RGB(r, g, b uint8) Color { return ARGB(0xFF, r, g, b) }

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

func (c Color) WithAlpha(a uint8) Color { return c&0x00FFFFFF | Color(a)<<24 }

// ScaleAlpha multiplies the alpha channel by f (clamped to 0..1) and rounds to
// the nearest 8-bit value. Color channels are left alone.
func (c Color) ScaleAlpha(f float64) Color {
	if !(f > 0) {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return c.WithAlpha(uint8(math.Round(float64(c.A()) * f)))
}

// RGBA implements color.Color. The packed value is straight alpha, so the
// channels are premultiplied here.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	r = uint32(c.R()) * a / 0xFF
	g = uint32(c.G()) * a / 0xFF
	b = uint32(c.B()) * a / 0xFF
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// FromColor converts any color.Color to a packed ARGB value.
func FromColor(c color.Color) Color {
	if p, ok := c.(Color); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// Blend composites fg over bg (source-over). The result is always opaque.
func Blend(bg, fg Color) Color {
	alpha := float64(fg.A()) / 255
	mix := func(f, b uint8) uint8 {
		return uint8(math.Round(float64(f)*alpha + float64(b)*(1-alpha)))
	}
	return ARGB(0xFF, mix(fg.R(), bg.R()), mix(fg.G(), bg.G()), mix(fg.B(), bg.B()))
}
