package app

import (
	"fbscene/gfx/surface"
	"fbscene/hal"
	"fbscene/internal/config"
	"fbscene/internal/posefeed"
)

// Navigation keys stand in for the keypad digits.
var keyRunes = map[hal.KeyCode]rune{
	hal.KeyHome:     '7',
	hal.KeyEnd:      '1',
	hal.KeyLeft:     '4',
	hal.KeyRight:    '6',
	hal.KeyUp:       '8',
	hal.KeyDown:     '2',
	hal.KeyPageUp:   '+',
	hal.KeyPageDown: '-',
}

const ctrlC = 0x03

func (s *System) drainInput() error {
	for {
		select {
		case ev := <-s.keys:
			if err := s.handleKey(ev); err != nil {
				return err
			}
		case u := <-s.poseUpdates():
			s.applyUpdate(u)
		case c := <-s.reloads:
			s.applyConfig(c)
		default:
			return nil
		}
	}
}

// poseUpdates is nil without a pose source, which never selects.
func (s *System) poseUpdates() <-chan posefeed.Update {
	if s.poses == nil {
		return nil
	}
	return s.poses.Updates()
}

func (s *System) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	r := ev.Rune
	if ev.Code != hal.KeyUnknown {
		if ev.Code == hal.KeyEscape {
			return hal.ErrQuit
		}
		r = keyRunes[ev.Code]
	}
	switch r {
	case 0:
		return nil
	case 'q', ctrlC:
		return hal.ErrQuit
	case 'h':
		s.showHUD = !s.showHUD
		return nil
	}
	s.fly.Apply(&s.cam, r)
	return nil
}

func (s *System) applyUpdate(u posefeed.Update) {
	if u.Pose == nil {
		if u.Key != 0 {
			s.fly.Apply(&s.cam, u.Key)
		}
		return
	}
	cam := s.cam
	cam.Position = u.Pose.Position
	cam.Rotation = u.Pose.Rotation
	cam.Distort = u.Pose.Distort
	if u.Pose.FOV > 0 {
		cam.FOV = u.Pose.FOV
	}
	if err := cam.Validate(); err != nil {
		s.logf("app: pose dropped: %v", err)
		return
	}
	s.cam = cam
}

func (s *System) applyConfig(c config.Config) {
	s.comp.Palette = c.ScenePalette()
	s.comp.GridSize = c.Grid
	s.comp.Rainbow = c.Rainbow
	s.e3.Mode = c.LineMode()
	s.hud.Color = surface.Color(c.Palette.Text)
	if c.Width != s.fb.Width() || c.Height != s.fb.Height() {
		s.logf("app: config reloaded; size %dx%d applies after a restart", c.Width, c.Height)
		return
	}
	s.logf("app: config reloaded")
}
