package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

const pgoProfilePath = "default.pgo"

// recordPGOProfile drives the profile-guided-optimization capture: the game
// switches to auto-explore so casts and draws keep streaming, CPU samples
// land in default.pgo, and the process exits once the recording window
// elapses. The returned stop also covers a game quit before the timer.
func recordPGOProfile(g *Game) (func(), error) {
	f, err := os.Create(pgoProfilePath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", pgoProfilePath, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("closing %s: %v", pgoProfilePath, err)
			}
		})
	}

	log.Printf("recording %s for %s", pgoProfilePath, pgoRecordLength)
	g.enableAutoExplore(pgoRecordLength)
	time.AfterFunc(pgoRecordLength, func() {
		stop()
		os.Exit(0)
	})
	return stop, nil
}
