// Command goboy runs a Game Boy ROM headless for a number of frames,
// optionally writing a screenshot and a state file when it is done.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/pkg/emu"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	frames := flag.Int("frames", 60, "The number of frames to run")
	state := flag.String("state", "", "The state file to load, or a state directory to resume the newest state from")
	saveState := flag.String("save-state", "", "Write a state file here once finished, or into this state directory")
	screenshot := flag.String("screenshot", "", "Write the last frame here (.png or .bmp)")
	scale := flag.Int("scale", 1, "The screenshot scale factor")
	pal := flag.Int("palette", palette.Greyscale, "The screenshot palette (0-3)")
	level := flag.String("log", "info", "The log level (debug, info, error)")
	serial := flag.Bool("serial", false, "Print serial output to stdout")
	flag.Parse()

	logger, err := log.New(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *romFile == "" {
		logger.Fatal("no rom file specified")
	}
	if *pal < 0 || *pal >= len(palette.Palettes) {
		logger.Fatal(fmt.Sprintf("unknown palette %d", *pal))
	}

	if err := run(logger, config{
		rom:        *romFile,
		boot:       *bootROM,
		frames:     *frames,
		state:      *state,
		saveState:  *saveState,
		screenshot: *screenshot,
		scale:      *scale,
		palette:    palette.Palettes[*pal],
		serial:     *serial,
		debug:      *level == "debug",
	}); err != nil {
		logger.Fatal(err.Error())
	}
}

type config struct {
	rom, boot, state      string
	saveState, screenshot string
	frames, scale         int
	palette               palette.Palette
	serial, debug         bool
}

// isDir reports whether path names a state directory rather
// than a state file.
func isDir(path string) bool {
	if path == "" {
		return false
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return true
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func run(logger log.Logger, cfg config) (err error) {
	rom, err := utils.LoadFile(cfg.rom)
	if err != nil {
		return err
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		return err
	}
	if !cart.Header().Valid() {
		logger.Errorf("header checksum mismatch, the boot ROM would refuse this cartridge")
	}
	logger.Infof("loaded %s", cart.Header())

	opts := []gameboy.Opt{gameboy.WithCartridge(cart), gameboy.WithLogger(logger)}
	if cfg.boot != "" {
		boot, err := utils.LoadFile(cfg.boot)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if cfg.state != "" {
		path := cfg.state
		if isDir(path) {
			if path, err = emu.LatestState(path, cart.Header().Title); err != nil {
				return err
			}
		}
		data, err := emu.LoadState(path)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithState(data))
		logger.Infof("resuming from %s", path)
	}
	if isDir(cfg.saveState) {
		cfg.saveState = emu.StatePath(cfg.saveState, cart.Header().Title)
	}
	if cfg.serial {
		opts = append(opts, gameboy.SerialDebugger(os.Stdout))
	}
	if cfg.debug {
		opts = append(opts, gameboy.Debug())
	}

	gb, err := gameboy.New(opts...)
	if err != nil {
		return err
	}

	// whatever happened while running, still try to write the
	// requested outputs
	defer func() {
		var result *multierror.Error
		if err != nil {
			result = multierror.Append(result, err)
		}
		if cfg.screenshot != "" {
			if serr := utils.SaveImage(utils.Scale(gb.Image(cfg.palette), cfg.scale), cfg.screenshot); serr != nil {
				result = multierror.Append(result, serr)
			} else {
				logger.Infof("wrote screenshot to %s", cfg.screenshot)
			}
		}
		if cfg.saveState != "" {
			if serr := emu.SaveState(cfg.saveState, gb.Save()); serr != nil {
				result = multierror.Append(result, serr)
			} else {
				logger.Infof("wrote state to %s", cfg.saveState)
			}
		}
		err = result.ErrorOrNil()
	}()

	for i := 0; i < cfg.frames; i++ {
		if _, err := gb.Frame(); err != nil {
			var opErr *cpu.UnknownOpcodeError
			if errors.As(err, &opErr) {
				logger.Errorf("halted after %d frames", i)
			}
			return err
		}
	}

	logger.Infof("ran %d frames, frame hash %016x", cfg.frames, gb.FrameHash())
	return nil
}
