//go:build headless

package main

// runWindowed falls back to the headless tick loop in builds with no
// window toolkit available.
func runWindowed(sys *system, cfg config, beeper *haltBeeper, term *terminalHost) {
	runHeadless(sys, cfg, beeper)
}
