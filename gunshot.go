package main

import (
	"math"
	"math/rand"
)

// synthGunshot renders a gunshot as interleaved stereo samples: a sharp
// noise crack decaying fast over a low sine thump.
func synthGunshot(rng *rand.Rand) []float32 {
	frames := audioSampleRate / 5
	out := make([]float32, 2*frames)
	for i := 0; i < frames; i++ {
		t := float64(i) / audioSampleRate
		crack := (rng.Float32()*2 - 1) * float32(math.Exp(-t*60))
		body := float32(math.Sin(2*math.Pi*55*t) * math.Exp(-t*18) * 0.6)
		v := 0.8*crack + body
		out[2*i] = v
		out[2*i+1] = v
	}
	return out
}

type echoTap struct {
	delayFrames int
	gain        float32
}

// withEchoTaps mixes delayed copies of a clip, one per reflection distance.
// A tap arrives after the round trip at the speed of sound and fades with
// distance, so tight tunnels slap back hard and wide chambers rumble late.
func withEchoTaps(clip []float32, distances []float64) []float32 {
	if len(distances) == 0 {
		return clip
	}
	taps := make([]echoTap, 0, len(distances))
	maxDelay := 0
	for _, d := range distances {
		delay := int(2 * d / speedOfSound * audioSampleRate)
		taps = append(taps, echoTap{
			delayFrames: delay,
			gain:        float32(0.5 / (1 + d*0.35)),
		})
		if delay > maxDelay {
			maxDelay = delay
		}
	}
	out := make([]float32, len(clip)+2*maxDelay)
	copy(out, clip)
	for _, tp := range taps {
		base := 2 * tp.delayFrames
		for i := 0; i < len(clip); i++ {
			out[base+i] += clip[i] * tp.gain
		}
	}
	return out
}

// playGunshot synthesizes a shot at the player's position, shapes its
// reverb from the surrounding cave geometry, and queues it on the stream.
func (g *Game) playGunshot() {
	if g.audioStream == nil {
		return
	}
	clip := withEchoTaps(synthGunshot(g.audioRand), echoDistances(g.chunk, g.eye))
	g.audioStream.mix(clip)
}
