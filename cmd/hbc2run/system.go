// Command hbc2run boots a ROM image on the HBC-2 core, wiring the
// machine package to a keyboard, a screen, and (when built without the
// headless tag) a window and audio output.
package main

import (
	"fmt"
	"os"

	"github.com/hbc2core/hbc2/devices"
	"github.com/hbc2core/hbc2/machine"
)

// system owns one complete HBC-2 instance: bus, CPU, RAM, interrupt
// dispatcher, and the two reference peripherals.
type system struct {
	mb       *machine.Motherboard
	cpu      *machine.CPU
	ram      *machine.RAM
	iod      *machine.IOD
	keyboard *devices.Keyboard
	screen   *devices.Screen
}

func newSystem() *system {
	mb := machine.NewMotherboard()
	mb.SetLogger(stderrLogger{})
	s := &system{
		mb:       mb,
		cpu:      machine.NewCPU(mb),
		ram:      machine.NewRAM(mb),
		iod:      machine.NewIOD(mb),
		keyboard: devices.NewKeyboard(),
		screen:   devices.NewScreen(),
	}

	if !mb.PlugDevice(s.keyboard) {
		fmt.Fprintln(os.Stderr, "hbc2run: failed to plug keyboard")
	}
	if !mb.PlugDevice(s.screen) {
		fmt.Fprintln(os.Stderr, "hbc2run: failed to plug screen")
	}

	return s
}

// loadROM reads path and loads it into RAM starting at
// machine.WorkMemoryStart.
func (s *system) loadROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("hbc2run: reading ROM: %w", err)
	}
	s.ram.LoadImage(data, machine.WorkMemoryStart)
	return nil
}

// tick advances every component one cycle, in the fixed CPU -> IOD ->
// RAM -> devices order spec.md §2 mandates.
func (s *system) tick() {
	s.cpu.Tick()
	s.iod.Tick()
	s.ram.Tick()
	s.keyboard.Tick()
	s.screen.Tick()
}

// halted reports whether the CPU is parked in HALT.
func (s *system) halted() bool {
	return s.cpu.Flags().Halt
}

// stderrLogger installs machine.Logger diagnostics (dropped
// interrupts, failed device plugs) on the process's standard error.
type stderrLogger struct{}

func (stderrLogger) Printf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "hbc2run: "+format+"\n", args...)
}
