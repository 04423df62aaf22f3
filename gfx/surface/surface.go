// Package surface is the pixel store the renderer draws into.
//
// A Surface is a fixed-size, row-major grid of packed ARGB colors laid over
// memory that someone else owns: a mapped framebuffer device, a window's back
// buffer or a plain slice. The surface never bounds-checks its coordinates;
// callers clip first (see package draw2d).
package surface

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	ErrInvalidSize = errors.New("surface: invalid size")
	ErrShortBuffer = errors.New("surface: backing buffer too small")
)

// Surface is a width×height view over 32bpp memory with a row stride in
// pixels.
type Surface struct {
	width  int
	height int
	stride int
	pix    []Color
}

// New binds a surface to mem without copying it. stride is the distance
// between rows in pixels; pass width for tightly packed memory.
func New(width, height, stride int, mem []uint32) (*Surface, error) {
	if width <= 0 || height <= 0 || stride < width {
		return nil, fmt.Errorf("%w: %dx%d stride %d", ErrInvalidSize, width, height, stride)
	}
	need := stride*(height-1) + width
	if len(mem) < need {
		return nil, fmt.Errorf("%w: have %d pixels, need %d", ErrShortBuffer, len(mem), need)
	}
	pix := unsafe.Slice((*Color)(unsafe.SliceData(mem)), len(mem))
	return &Surface{width: width, height: height, stride: stride, pix: pix}, nil
}

// Alloc creates a surface over freshly allocated memory.
func Alloc(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return New(width, height, width, make([]uint32, width*height))
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }
func (s *Surface) Stride() int { return s.stride }

// Pix returns the backing pixels, including any row padding.
func (s *Surface) Pix() []Color { return s.pix }

// SetPixel stores c at (x, y). The coordinate must already be clipped.
func (s *Surface) SetPixel(x, y int, c Color) {
	s.pix[y*s.stride+x] = c
}

// BlendPixel composites c over the stored value and writes an opaque result.
func (s *Surface) BlendPixel(x, y int, c Color) {
	i := y*s.stride + x
	s.pix[i] = Blend(s.pix[i], c)
}

func (s *Surface) GetPixel(x, y int) Color {
	return s.pix[y*s.stride+x]
}

// Clear zeroes every visible cell.
func (s *Surface) Clear() {
	s.Fill(0)
}

// Fill sets every visible cell to c.
func (s *Surface) Fill(c Color) {
	if s.stride == s.width {
		row := s.pix[:s.width*s.height]
		for i := range row {
			row[i] = c
		}
		return
	}
	for y := 0; y < s.height; y++ {
		row := s.pix[y*s.stride : y*s.stride+s.width]
		for i := range row {
			row[i] = c
		}
	}
}
