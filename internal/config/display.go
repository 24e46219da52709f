package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"doom-video/internal/palette"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the display config file, relative to the process working directory.
const DefaultPath = "config/video.yaml"

// MaxScale is the largest window multiplier accepted.
const MaxScale = 4

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid display config")

// Display holds the presentation settings. It is resolved once at startup and
// not changed after the display is created.
type Display struct {
	// Scale multiplies the window size; each logical pixel becomes Scale*Scale.
	Scale        int    `yaml:"scale,omitempty"`
	GrabMouse    bool   `yaml:"grab_mouse,omitempty"`
	Backend      string `yaml:"backend,omitempty"`
	Title        string `yaml:"title,omitempty"`
	Gamma        int    `yaml:"gamma,omitempty"`
	Playpal      string `yaml:"playpal,omitempty"` // PLAYPAL lump loaded at startup
	ShowFPS      bool   `yaml:"show_fps,omitempty"`
	ShowMemAlloc bool   `yaml:"show_memalloc,omitempty"`
}

// Default returns a 1x SDL window titled DOOM with no mouse grab.
func Default() Display {
	return Display{
		Scale:   1,
		Backend: "sdl",
		Title:   "DOOM",
	}
}

// Validate checks ranges.
func (d Display) Validate() error {
	if d.Scale < 1 || d.Scale > MaxScale {
		return fmt.Errorf("%w: scale %d not in 1..%d", ErrInvalid, d.Scale, MaxScale)
	}
	if d.Gamma < 0 || d.Gamma >= palette.GammaLevels {
		return fmt.Errorf("%w: gamma %d not in 0..%d", ErrInvalid, d.Gamma, palette.GammaLevels-1)
	}
	if d.Backend == "" {
		return fmt.Errorf("%w: empty backend", ErrInvalid)
	}
	return nil
}

// Load reads display settings from a YAML file and lays the non-zero values
// over Default(). A missing file yields Default() and no error; a malformed
// one yields Default() and the parse error.
func Load(path string) (Display, error) {
	d := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, err
	}
	var file Display
	if err := yaml.Unmarshal(data, &file); err != nil {
		return d, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := copier.CopyWithOption(&d, &file, copier.Option{IgnoreEmpty: true}); err != nil {
		return Default(), err
	}
	return d, nil
}

// Save writes d to path as YAML, creating the directory if needed.
func Save(path string, d Display) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CheckParm returns the position of name in args, or 0 if absent. args[0] is
// the program name and is never matched.
func CheckParm(args []string, name string) int {
	for i := 1; i < len(args); i++ {
		if args[i] == name {
			return i
		}
	}
	return 0
}

// FromArgs applies command-line parameters to base: -2, -3, -4 select the
// scale (the largest given wins), -grabmouse captures the mouse, -showfps logs
// the frame rate, and -backend, -gamma and -playpal take a value. Other
// parameters belong to the engine and are ignored.
func FromArgs(base Display, args []string) (Display, error) {
	d := base
	for _, n := range []int{2, 3, 4} {
		if CheckParm(args, "-"+strconv.Itoa(n)) > 0 {
			d.Scale = n
		}
	}
	if CheckParm(args, "-grabmouse") > 0 {
		d.GrabMouse = true
	}
	if CheckParm(args, "-showfps") > 0 {
		d.ShowFPS = true
	}
	if v, ok := paramValue(args, "-backend"); ok {
		d.Backend = v
	}
	if v, ok := paramValue(args, "-playpal"); ok {
		d.Playpal = v
	}
	if v, ok := paramValue(args, "-gamma"); ok {
		g, err := strconv.Atoi(v)
		if err != nil {
			return base, fmt.Errorf("%w: -gamma %q", ErrInvalid, v)
		}
		d.Gamma = g
	}
	return d, nil
}

func paramValue(args []string, name string) (string, bool) {
	i := CheckParm(args, name)
	if i == 0 || i+1 >= len(args) {
		return "", false
	}
	return args[i+1], true
}
