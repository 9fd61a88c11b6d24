package main

import "sync"

// pushAudioStream is an endless 16-bit stereo stream. The game loop mixes
// finished clips into the queue; the audio player's goroutine drains it
// through Read and gets silence once the queue is empty. Clips mixed while
// another is still playing sum sample-wise and clip at full scale.
type pushAudioStream struct {
	mu    sync.Mutex
	queue []float32
	head  int
}

func newPushAudioStream() *pushAudioStream {
	return &pushAudioStream{}
}

// mix adds an interleaved stereo clip starting at the current play position.
func (s *pushAudioStream) mix(clip []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	need := s.head + len(clip)
	if need > len(s.queue) {
		s.queue = append(s.queue, make([]float32, need-len(s.queue))...)
	}
	for i, v := range clip {
		s.queue[s.head+i] += v
	}
}

// Read emits whole stereo frames as little-endian 16-bit PCM.
func (s *pushAudioStream) Read(p []byte) (int, error) {
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < frameBytes; i += 2 {
		var v float32
		if s.head < len(s.queue) {
			v = s.queue[s.head]
			s.head++
		}
		pcm := pcm16FromFloat(v)
		p[i] = byte(pcm)
		p[i+1] = byte(pcm >> 8)
	}
	if s.head == len(s.queue) && s.head > 0 {
		s.queue = s.queue[:0]
		s.head = 0
	}
	return frameBytes, nil
}

func (s *pushAudioStream) Close() error {
	return nil
}

func pcm16FromFloat(v float32) int16 {
	scaled := int(v * pcm16MaxValue)
	if scaled > pcm16MaxValue {
		scaled = pcm16MaxValue
	}
	if scaled < pcm16MinValue {
		scaled = pcm16MinValue
	}
	return int16(scaled)
}
