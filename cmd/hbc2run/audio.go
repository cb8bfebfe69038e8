//go:build !headless

package main

import (
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	beepSampleRate = 44100
	beepFrequency  = 880.0
)

// haltBeeper drives a single continuous tone through oto while the CPU
// is parked in HALT, silent otherwise — grounded on audio_backend_oto.go's
// OtoPlayer, scoped down from a multi-channel chip mixer to one tone.
type haltBeeper struct {
	ctx    *oto.Context
	player *oto.Player
	halted atomic.Bool
	phase  float64
}

func newHaltBeeper() *haltBeeper {
	b := &haltBeeper{}

	opts := &oto.NewContextOptions{
		SampleRate:   beepSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return b
	}
	<-ready

	b.ctx = ctx
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b
}

// Read implements io.Reader for oto.Player: a square wave while halted,
// silence otherwise.
func (b *haltBeeper) Read(p []byte) (int, error) {
	n := len(p) / 4
	step := beepFrequency / beepSampleRate

	for i := 0; i < n; i++ {
		var sample float32
		if b.halted.Load() {
			b.phase += step
			if b.phase >= 1 {
				b.phase -= 1
			}
			if b.phase < 0.5 {
				sample = 0.2
			} else {
				sample = -0.2
			}
		}
		writeFloat32LE(p[i*4:i*4+4], sample)
	}
	return n * 4, nil
}

func (b *haltBeeper) setHalted(h bool) { b.halted.Store(h) }

func (b *haltBeeper) Close() {
	if b.player != nil {
		_ = b.player.Close()
	}
}

func writeFloat32LE(dst []byte, f float32) {
	bits := math.Float32bits(f)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}
