package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	flag "github.com/spf13/pflag"

	"raymaze/internal/config"
	"raymaze/internal/game"
	"raymaze/internal/graphics"
	"raymaze/internal/render"
	"raymaze/internal/threading/monitoring"
	"raymaze/internal/world"
)

func main() {
	configPath := flag.StringP("config", "c", config.DefaultPath, "path to the configuration file")
	terminal := flag.BoolP("terminal", "t", false, "render into the terminal instead of a window")
	doubleWeapon := flag.Bool("double-weapon", false, "also draw the weapon underneath the walls")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <map_file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath, flag.CommandLine.Changed("config"))
	if err != nil {
		log.Fatal(err)
	}
	if *doubleWeapon {
		cfg.Render.DoubleWeaponDraw = true
	}

	if err := run(cfg, flag.Arg(0), *terminal); err != nil {
		log.Fatal(err)
	}
}

// loadConfig falls back to the built-in defaults only when the default
// config file is absent; a file named on the command line must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] %s not found, using defaults", path)
		return config.Default(), nil
	}
	return nil, fmt.Errorf("%w: %w", game.ErrInitialization, err)
}

func run(cfg *config.Config, mapPath string, terminal bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	md, err := world.NewMapLoader(cfg.GetMapWidth(), cfg.GetMapHeight(), log.Default()).LoadMap(mapPath)
	if err != nil {
		return err
	}

	state, err := game.NewState(md, cfg)
	if err != nil {
		return err
	}

	textures, err := graphics.LoadTextureSet(ctx, cfg.Assets, log.Default())
	if err != nil {
		return err
	}

	opts, err := render.OptionsFromConfig(cfg.Render)
	if err != nil {
		return fmt.Errorf("%w: %w", game.ErrInitialization, err)
	}
	monitor := monitoring.NewFrameMonitor(cfg.GetFrameInterval())

	if terminal {
		return runTerminal(ctx, cfg, state, func(logger *log.Logger) *render.Compositor {
			return render.NewCompositor(opts, textures.ImageTextures(), monitor, logger)
		})
	}

	compositor := render.NewCompositor(opts, textures.EbitenTextures(), monitor, log.Default())
	return game.NewEbitenGame(ctx, cfg, state, compositor).Run()
}

func runTerminal(ctx context.Context, cfg *config.Config, state *game.State, newCompositor func(*log.Logger) *render.Compositor) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: terminal: %w", game.ErrInitialization, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: terminal: %w", game.ErrInitialization, err)
	}
	screen.HideCursor()

	// Writing to stderr would tear the cell grid, so frame logs are held
	// until the terminal is restored.
	var held bytes.Buffer
	logger := log.New(&held, "", log.LstdFlags)
	compositor := newCompositor(logger)

	err = game.NewTerminalRunner(cfg, state, compositor, screen, logger).Run(ctx)
	screen.Fini()

	os.Stderr.Write(held.Bytes())

	log.Printf("[game] session ended: %v", compositor.Monitor().GetDetailedStats())
	return err
}
