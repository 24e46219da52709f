package main

import (
	"fmt"
	"image/color"
	"os"
	"runtime"
	"strconv"
	"time"

	"doom-video/internal/commands"
	"doom-video/internal/config"
	"doom-video/internal/host/rlhost"
	"doom-video/internal/host/sdlhost"
	"doom-video/internal/host/termhost"
	"doom-video/internal/input"
	"doom-video/internal/logger"
	"doom-video/internal/palette"
	"doom-video/internal/snapshot"
	"doom-video/internal/video"
)

// ticRate is the engine's logical tics per second.
const ticRate = 35

type host struct {
	open   video.Backend
	keymap input.Keymap
}

var hosts = map[string]host{
	"sdl":    {open: sdlhost.Open, keymap: sdlhost.Keymap},
	"raylib": {open: rlhost.Open, keymap: rlhost.Keymap},
	"term":   {open: termhost.Open, keymap: termhost.Keymap},
}

func init() {
	// SDL and raylib must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	// No FlagSets: parameters are scanned with config.FromArgs and param, and
	// unknown ones belong to the engine.
	reg := commands.NewRegistry("run")
	reg.Register("run", "open a window and show the test pattern", nil, run)
	reg.Register("snapshot", "render without a display and write the screen as PNG (-out file, -tics n)", nil, snapshotCmd)

	if err := reg.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "doomvideo:", err)
		reg.Usage(os.Stderr)
		os.Exit(1)
	}
}

// param returns the value following name in args (without the program name).
func param(args []string, name string) (string, bool) {
	i := config.CheckParm(append([]string{""}, args...), name)
	if i == 0 || i >= len(args) {
		return "", false
	}
	return args[i], true
}

// resolve reads the config file and applies parameters over it.
func resolve(args []string) (config.Display, error) {
	path := config.DefaultPath
	if v, ok := param(args, "-config"); ok {
		path = v
	}
	base, err := config.Load(path)
	if err != nil {
		return base, err
	}
	cfg, err := config.FromArgs(base, append([]string{""}, args...))
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadPalette(ctx *video.Context, cfg config.Display) error {
	raw := palette.Grayscale()
	if cfg.Playpal != "" {
		f, err := os.Open(cfg.Playpal)
		if err != nil {
			return err
		}
		defer f.Close()
		pals, err := palette.LoadPlaypal(f)
		if err != nil {
			return err
		}
		raw = pals[0]
	}
	return ctx.SetPalette(raw)
}

func run(args []string) error {
	cfg, err := resolve(args)
	if err != nil {
		return err
	}
	h, ok := hosts[cfg.Backend]
	if !ok {
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	log := logger.New(logger.DefaultPath)
	queue := input.NewQueue()
	ctx := video.New(video.ScreenWidth, video.ScreenHeight, cfg, h.open, h.keymap, queue, log)
	if err := ctx.Init(); err != nil {
		return err
	}
	defer ctx.Shutdown()
	if err := loadPalette(ctx, cfg); err != nil {
		return err
	}

	pat := &pattern{marker: ctx.Palette().Nearest(color.White)}
	ticker := time.NewTicker(time.Second / ticRate)
	defer ticker.Stop()
	for range ticker.C {
		if ctx.StartTic() {
			return nil
		}
		for _, ev := range queue.Drain() {
			log.Logf("event: %v", ev)
			pat.Handle(ev)
		}
		pat.Draw(ctx.Screen(), video.ScreenWidth, video.ScreenHeight)
		// A failed frame is already logged; the next tic tries again.
		_ = ctx.FinishUpdate()
	}
	return nil
}

type snapshotOptions struct {
	out  string
	tics int
}

func parseSnapshot(args []string) (snapshotOptions, error) {
	opts := snapshotOptions{out: "snapshot.png", tics: 1}
	if v, ok := param(args, "-out"); ok {
		opts.out = v
	}
	if v, ok := param(args, "-tics"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("-tics %q: want a positive number", v)
		}
		opts.tics = n
	}
	return opts, nil
}

func snapshotCmd(args []string) error {
	opts, err := parseSnapshot(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(args)
	if err != nil {
		return err
	}
	ctx := video.New(video.ScreenWidth, video.ScreenHeight, cfg, nil, nil, input.NewQueue(), nil)
	if err := ctx.SetGamma(cfg.Gamma); err != nil {
		return err
	}
	if err := loadPalette(ctx, cfg); err != nil {
		return err
	}
	pat := &pattern{marker: ctx.Palette().Nearest(color.White)}
	for i := 0; i < opts.tics; i++ {
		pat.Draw(ctx.Screen(), video.ScreenWidth, video.ScreenHeight)
	}
	img, err := snapshot.Image(ctx.ReadScreen(), video.ScreenWidth, video.ScreenHeight, ctx.Palette())
	if err != nil {
		return err
	}
	return snapshot.WritePNG(opts.out, snapshot.Scale(img, cfg.Scale))
}
