package main

import (
	"math"
	"math/rand"
	"testing"
)

func TestSynthGunshot_ShapeAndDeterminism(t *testing.T) {
	a := synthGunshot(rand.New(rand.NewSource(9)))
	if len(a) != 2*audioSampleRate/5 {
		t.Fatalf("expected a 200ms stereo clip, got %d samples", len(a))
	}
	for i := 0; i < len(a); i += 2 {
		if a[i] != a[i+1] {
			t.Fatalf("frame %d: expected identical channels", i/2)
		}
		if v := float64(a[i]); math.Abs(v) > 1.5 {
			t.Fatalf("frame %d: sample %.3f out of bounds", i/2, v)
		}
	}

	b := synthGunshot(rand.New(rand.NewSource(9)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d: expected the same clip for the same seed", i)
		}
	}

	// The crack decays: the tail must be much quieter than the attack.
	peakHead, peakTail := 0.0, 0.0
	for i := 0; i < 200; i += 2 {
		peakHead = math.Max(peakHead, math.Abs(float64(a[i])))
	}
	for i := len(a) - 200; i < len(a); i += 2 {
		peakTail = math.Max(peakTail, math.Abs(float64(a[i])))
	}
	if peakTail > peakHead/10 {
		t.Fatalf("expected the shot to decay, head %.3f tail %.3f", peakHead, peakTail)
	}
}

func TestWithEchoTaps_NoReflectionsPassThrough(t *testing.T) {
	clip := []float32{1, 1, 0.5, 0.5}
	out := withEchoTaps(clip, nil)
	if len(out) != len(clip) {
		t.Fatalf("expected the clip unchanged, got %d samples", len(out))
	}
}

func TestWithEchoTaps_DelaysAndAttenuates(t *testing.T) {
	clip := make([]float32, 8)
	clip[0], clip[1] = 1, 1

	dist := 20.0
	delay := int(2 * dist / speedOfSound * audioSampleRate)
	gain := float32(0.5 / (1 + dist*0.35))

	out := withEchoTaps(clip, []float64{dist})
	if len(out) != len(clip)+2*delay {
		t.Fatalf("expected %d samples with the echo tail, got %d", len(clip)+2*delay, len(out))
	}
	if out[0] != 1 {
		t.Fatalf("expected the direct sound up front, got %.3f", out[0])
	}
	if got := out[2*delay]; got != gain {
		t.Fatalf("expected the tap at frame %d with gain %.4f, got %.4f", delay, gain, got)
	}
	for i := 2; i < 2*delay; i++ {
		if out[i] != 0 {
			t.Fatalf("expected silence between the shot and the echo, broke at %d", i)
		}
	}
}

func TestWithEchoTaps_TailCoversFarthestReflection(t *testing.T) {
	clip := make([]float32, 4)
	clip[0] = 1
	distances := []float64{3, 11, 7}

	maxDelay := 0
	for _, d := range distances {
		if delay := int(2 * d / speedOfSound * audioSampleRate); delay > maxDelay {
			maxDelay = delay
		}
	}
	out := withEchoTaps(clip, distances)
	if len(out) != len(clip)+2*maxDelay {
		t.Fatalf("expected the tail sized for the farthest wall, got %d samples", len(out))
	}
}
