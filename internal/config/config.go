// Package config loads the renderer settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fbscene/gfx/draw3d"
	"fbscene/gfx/scene"
	"fbscene/gfx/surface"
	"fbscene/gfx/vecmath"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

const (
	LinesSolid = "solid"
	LinesAA    = "aa"
)

// Config is the full set of renderer settings.
type Config struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Camera  Camera  `yaml:"camera"`
	Palette Palette `yaml:"palette"`
	Lines   string  `yaml:"lines"`
	Grid    int     `yaml:"grid"`
	Rainbow bool    `yaml:"rainbow"`
	Listen  string  `yaml:"listen,omitempty"`
}

// Camera is the start pose.
type Camera struct {
	Position [3]float64 `yaml:"position,flow"`
	Rotation [3]float64 `yaml:"rotation,flow"`
	FOV      float64    `yaml:"fov"`
	Distort  float64    `yaml:"distort"`
}

type Palette struct {
	Horizon Color `yaml:"horizon"`
	Grid    Color `yaml:"grid"`
	Points  Color `yaml:"points"`
	Cube    Color `yaml:"cube"`
	Text    Color `yaml:"text"`
}

// Default reproduces the reference scene at 320x240.
func Default() Config {
	cam := draw3d.DefaultCamera()
	p := scene.DefaultPalette()
	return Config{
		Width:  320,
		Height: 240,
		Camera: Camera{
			Position: [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
			FOV:      cam.FOV,
		},
		Palette: Palette{
			Horizon: Color(p.Horizon),
			Grid:    Color(p.Grid),
			Points:  Color(p.Points),
			Cube:    Color(p.Cube),
			Text:    Color(surface.Yellow),
		},
		Lines: LinesSolid,
		Grid:  scene.DefaultGridSize,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Lines != LinesSolid && c.Lines != LinesAA:
		return fmt.Errorf("%w: lines %q (want %q or %q)", ErrInvalid, c.Lines, LinesSolid, LinesAA)
	case c.Grid <= 0:
		return fmt.Errorf("%w: grid %d", ErrInvalid, c.Grid)
	}
	if err := c.DrawCamera().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Encode writes c as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func (c Config) DrawCamera() draw3d.Camera {
	return draw3d.Camera{
		Position: vecmath.V3(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2]),
		Rotation: vecmath.V3(c.Camera.Rotation[0], c.Camera.Rotation[1], c.Camera.Rotation[2]),
		FOV:      c.Camera.FOV,
		Distort:  c.Camera.Distort,
	}
}

func (c Config) LineMode() draw3d.LineMode {
	if c.Lines == LinesAA {
		return draw3d.LineAA
	}
	return draw3d.LineSolid
}

func (c Config) ScenePalette() scene.Palette {
	return scene.Palette{
		Horizon: surface.Color(c.Palette.Horizon),
		Grid:    surface.Color(c.Palette.Grid),
		Points:  surface.Color(c.Palette.Points),
		Cube:    surface.Color(c.Palette.Cube),
	}
}

// Color is a surface color written in YAML as an SVG color name or as
// #RRGGBB / #AARRGGBB.
type Color surface.Color

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = Color(v)
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%08X", uint32(c)), nil
}

// ParseColor accepts a color name from golang.org/x/image/colornames or a
// hex value. Six hex digits are opaque.
func ParseColor(s string) (surface.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 && len(hex) != 8 {
			return 0, fmt.Errorf("%w: color %q", ErrInvalid, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: color %q", ErrInvalid, s)
		}
		if len(hex) == 6 {
			v |= 0xFF000000
		}
		return surface.Color(v), nil
	}
	rgba, ok := colornames.Map[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown color %q", ErrInvalid, s)
	}
	return surface.FromColor(rgba), nil
}
