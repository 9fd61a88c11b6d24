package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("seed %d", seed)

	buildCastLookups(maxCastRange)
	g := newGame(seed)

	stopRecording := func() {}
	if *recordDefaultPGO {
		stop, err := recordPGOProfile(g)
		if err != nil {
			log.Fatalf("profile recording: %v", err)
		}
		stopRecording = stop
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Katakomb")
	ebiten.SetTPS(defaultTPS)
	err := ebiten.RunGame(g)
	stopRecording()
	if err != nil {
		log.Fatal(err)
	}
}
