package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hbc2core/hbc2/devices"
)

// config holds the command-line knobs, following the teacher's plain
// stdlib flag style rather than a CLI framework.
type config struct {
	rom       string
	hz        int
	headless  bool
	maxCycles int
}

func parseConfig() config {
	var c config
	flag.StringVar(&c.rom, "rom", "", "path to the ROM image to load at 0x000400")
	flag.IntVar(&c.hz, "hz", 1_000_000, "target CPU clock rate in Hz")
	flag.BoolVar(&c.headless, "headless", false, "run without a window or audio device")
	flag.IntVar(&c.maxCycles, "max-cycles", 0, "stop after N cycles in headless mode (0 = run forever; the windowed mode runs until closed)")
	flag.Parse()
	return c
}

func main() {
	cfg := parseConfig()
	if cfg.rom == "" {
		fmt.Fprintln(os.Stderr, "hbc2run: -rom is required")
		os.Exit(1)
	}

	sys := newSystem()
	if err := sys.loadROM(cfg.rom); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	beeper := newHaltBeeper()
	defer beeper.Close()

	term := newTerminalHost(sys.keyboard)
	term.Start()
	defer term.Stop()

	if cfg.headless {
		runHeadless(sys, cfg, beeper)
		return
	}
	runWindowed(sys, cfg, beeper, term)
}

// runHeadless drives the tick loop with no window: a fixed-rate ticker
// and a dump of the screen device to stdout whenever it reports a new
// frame.
func runHeadless(sys *system, cfg config, beeper *haltBeeper) {
	period := time.Second / time.Duration(cfg.hz)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var cycles int
	for range ticker.C {
		sys.tick()
		beeper.setHalted(sys.halted())

		if sys.screen.ConsumeFrame() {
			printScreen(sys.screen)
		}

		cycles++
		if cfg.maxCycles > 0 && cycles >= cfg.maxCycles {
			return
		}
	}
}

func printScreen(s *devices.Screen) {
	fmt.Print("\033[H\033[2J")
	for line := uint8(0); line < devices.ScreenCharHeight; line++ {
		for row := uint8(0); row < devices.ScreenCharWidth; row++ {
			c, _ := s.Cell(row, line)
			fmt.Printf("%c", c)
		}
		fmt.Println()
	}
}
