//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

var hostKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeyPageDown, KeyPageDown},
}

func (k *hostKeyboard) poll() {
	emit := func(ev KeyEvent) {
		select {
		case k.ch <- ev:
		default:
		}
	}

	// Typed characters cover the keypad digits and the movement letters.
	for _, r := range ebiten.AppendInputChars(nil) {
		emit(KeyEvent{Press: true, Rune: r})
	}

	for _, hk := range hostKeys {
		if inpututil.IsKeyJustPressed(hk.key) {
			emit(KeyEvent{Code: hk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(hk.key) {
			emit(KeyEvent{Code: hk.code, Press: false})
		}
	}
}
