//go:build cgo

package hal

import (
	"errors"
	"image"

	"fbscene/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes or the step function returns ErrQuit.
func RunWindow(s Screen, newApp func(HAL) (func() error, error)) error {
	h := newHost(s)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("fbscene (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGBA(g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
