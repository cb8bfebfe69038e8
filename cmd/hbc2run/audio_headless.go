//go:build headless

package main

// haltBeeper is a no-op stand-in for the oto-backed beeper, used in
// headless builds where no audio device is available.
type haltBeeper struct{}

func newHaltBeeper() *haltBeeper { return &haltBeeper{} }

func (b *haltBeeper) setHalted(bool) {}

func (b *haltBeeper) Close() {}
