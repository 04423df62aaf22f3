// Package app wires the renderer to a HAL: it drains input, moves the
// camera, renders the scene and presents it once per step.
package app

import (
	"errors"
	"fmt"

	"fbscene/gfx/draw2d"
	"fbscene/gfx/draw3d"
	"fbscene/gfx/overlay"
	"fbscene/gfx/scene"
	"fbscene/gfx/surface"
	"fbscene/hal"
	"fbscene/internal/config"
	"fbscene/internal/posefeed"
	"fbscene/internal/status"
)

var ErrUnsupportedDisplay = errors.New("app: unsupported display")

// PoseSource supplies remote camera updates and receives frame statistics.
type PoseSource interface {
	Updates() <-chan posefeed.Update
	PublishFrame(posefeed.FrameStats)
}

type Config struct {
	Scene config.Config

	// HUD draws the frame time and camera pose over the scene.
	HUD bool

	// Status, when set, receives the frame time after every frame.
	Status *status.Line

	// Poses, when set, is drained every step.
	Poses PoseSource

	// Reloads delivers edited configs. Colors, line mode, grid size and the
	// rainbow apply at once; a new size or camera needs a restart.
	Reloads <-chan config.Config
}

// System renders one frame per Step.
type System struct {
	log     hal.Logger
	fb      hal.Framebuffer
	keys    <-chan hal.KeyEvent
	poses   PoseSource
	reloads <-chan config.Config
	status  *status.Line

	surf *surface.Surface
	e3   *draw3d.Engine
	comp *scene.Composer
	fly  *draw3d.FlyController
	hud  *overlay.HUD

	cam     draw3d.Camera
	showHUD bool
	last    scene.Stats
}

func New(h hal.HAL, cfg Config) (*System, error) {
	if err := cfg.Scene.Validate(); err != nil {
		return nil, err
	}
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, fmt.Errorf("%w: no framebuffer", ErrUnsupportedDisplay)
	}
	fb := disp.Framebuffer()
	if fb.Format() != hal.PixelFormatARGB8888 {
		return nil, fmt.Errorf("%w: pixel format %d", ErrUnsupportedDisplay, fb.Format())
	}

	fb.Clear()
	surf, err := surface.New(fb.Width(), fb.Height(), fb.StrideBytes()/4, fb.Pixels())
	if err != nil {
		return nil, fmt.Errorf("bind framebuffer: %w", err)
	}
	d := draw2d.New(surf)
	cam := cfg.Scene.DrawCamera()
	e3, err := draw3d.New(d, cam)
	if err != nil {
		return nil, err
	}
	e3.Mode = cfg.Scene.LineMode()
	comp := scene.NewComposer(e3,
		scene.WithPalette(cfg.Scene.ScenePalette()),
		scene.WithGridSize(cfg.Scene.Grid),
		scene.WithRainbow(cfg.Scene.Rainbow),
	)

	s := &System{
		log:     h.Logger(),
		fb:      fb,
		poses:   cfg.Poses,
		reloads: cfg.Reloads,
		status:  cfg.Status,
		surf:    surf,
		e3:      e3,
		comp:    comp,
		fly:     draw3d.NewFlyController(),
		hud:     overlay.New(d, surface.Color(cfg.Scene.Palette.Text)),
		cam:     cam,
		showHUD: cfg.HUD,
	}
	if in := h.Input(); in != nil && in.Keyboard() != nil {
		s.keys = in.Keyboard().Events()
	}
	s.logf("app: %dx%d stride %d lines %s", fb.Width(), fb.Height(), surf.Stride(), cfg.Scene.Lines)
	return s, nil
}

// Camera is the pose used for the next frame.
func (s *System) Camera() draw3d.Camera { return s.cam }

// Stats describes the last rendered frame.
func (s *System) Stats() scene.Stats { return s.last }

// Step applies pending input and draws one frame. It returns hal.ErrQuit
// when a quit key was pressed.
func (s *System) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = s.panicked(r)
		}
	}()

	if err := s.drainInput(); err != nil {
		return err
	}

	st, err := s.comp.Render(s.cam)
	if err != nil {
		return err
	}
	if s.showHUD {
		s.drawHUD(st)
	}
	if err := s.fb.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	s.last = st

	if s.status != nil {
		if err := s.status.Frame(st.Duration); err != nil {
			s.logf("app: status: %v", err)
			s.status = nil
		}
	}
	if s.poses != nil {
		s.poses.PublishFrame(posefeed.FrameStats{
			MS:     float64(st.Duration.Microseconds()) / 1000,
			Lines:  st.Lines,
			Points: st.Points,
		})
	}
	return nil
}

func (s *System) drawHUD(st scene.Stats) {
	c := s.cam
	s.hud.Lines(
		status.Format(st.Duration),
		fmt.Sprintf("pos %.1f %.1f %.1f", c.Position.X, c.Position.Y, c.Position.Z),
		fmt.Sprintf("yaw %.2f pitch %.2f", c.Rotation.Y, c.Rotation.X),
		fmt.Sprintf("fov %.2f k %.1f", c.FOV, c.Distort),
	)
}

func (s *System) logf(format string, args ...interface{}) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}
