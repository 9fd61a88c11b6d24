package main

import (
	"encoding/binary"
	"testing"
)

func readSamples(t *testing.T, s *pushAudioStream, frames int) []int16 {
	t.Helper()
	buf := make([]byte, 4*frames)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("expected %d bytes, got %d", len(buf), n)
	}
	out := make([]int16, 2*frames)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	return out
}

func TestPushAudioStream_EncodesMixedSamples(t *testing.T) {
	s := newPushAudioStream()
	s.mix([]float32{0.5, -0.5, 1.0, -1.5})

	got := readSamples(t, s, 2)
	want := []int16{16383, -16383, 32767, -32768}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestPushAudioStream_SilenceAfterDrain(t *testing.T) {
	s := newPushAudioStream()
	s.mix([]float32{0.25, 0.25})

	readSamples(t, s, 1)
	for i, v := range readSamples(t, s, 4) {
		if v != 0 {
			t.Fatalf("sample %d: expected silence after drain, got %d", i, v)
		}
	}
}

func TestPushAudioStream_WholeFramesOnly(t *testing.T) {
	s := newPushAudioStream()
	buf := make([]byte, 6)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected one whole frame from a 6-byte buffer, got %d bytes", n)
	}

	n, err = s.Read(buf[:3])
	if err != nil || n != 0 {
		t.Fatalf("expected no bytes from a sub-frame buffer, got %d (%v)", n, err)
	}
}

func TestPushAudioStream_OverlappingClipsSum(t *testing.T) {
	s := newPushAudioStream()
	s.mix([]float32{0.25, 0.25, 0.25, 0.25})
	readSamples(t, s, 1)
	s.mix([]float32{0.25, 0.25})

	got := readSamples(t, s, 1)
	want := pcm16FromFloat(0.5)
	if got[0] != want || got[1] != want {
		t.Fatalf("expected overlapping clips to sum to %d, got %d and %d", want, got[0], got[1])
	}

	// Fully drained: the queue resets for the next shot.
	s.mu.Lock()
	if len(s.queue) != 0 || s.head != 0 {
		t.Fatalf("expected the drained queue to reset, got len=%d head=%d", len(s.queue), s.head)
	}
	s.mu.Unlock()
}
