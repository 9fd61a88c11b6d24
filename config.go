package main

import (
	"math"
	"time"
)

// World, casting, rendering, and audio configuration constants used throughout
// the game. These values define the chunk size, cast ranges, projection, and
// audio behavior for the voxel dungeon.
const (
	chunkSize         = 64
	lightRange        = 12
	torchRange        = 24
	muzzleFlashRange  = 12
	playerSightRange  = 16
	maxCastRange      = 24
	maxSoundRange     = 16
	candleLightBudget = 6
	maxFrameLights    = 16

	noiseScale        = 0.1
	noiseWeightScale  = 0.01
	caveThresholdBase = 0.15
	candleChance      = 500
	mushroomChance    = 300

	windowWidth    = 1360
	windowHeight   = 768
	cameraFOV      = math.Pi / 2
	cameraNear     = 1.0
	cameraFar      = 1000.0
	depthScale     = 31.4
	ambientLevel   = 0.04
	gunScale       = 0.75
	torchHalfAngle = math.Pi / 4.5

	moveSpeed        = 0.25
	rotateSpeed      = 0.05
	pitchLimit       = math.Pi/2 - 0.1
	fireCooldownTics = 6
	muzzleFlashTics  = 2
	recoilDecay      = 0.8
	adsLerpRate      = 0.3

	glyphWidth      = 8
	glyphHeight     = 16
	atlasColumns    = 16
	atlasRows       = 8
	defaultTPS      = 60
	pgoRecordLength = 30 * time.Second

	audioSampleRate     = 48000
	audioBufferDuration = 80 * time.Millisecond
	pcm16MaxValue       = 32767
	pcm16MinValue       = -32768
	speedOfSound        = 343.0

	editsFileName = "katakomb_edits.json"
)
