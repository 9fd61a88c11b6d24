package main

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game holds the chunk, the camera, the cast worker pool, and the gun,
// editor, and audio state.
type Game struct {
	chunk *chunk
	pool  *scanPool
	seed  int64

	eye   mgl64.Vec3
	yaw   float64
	pitch float64

	tic uint64

	drawList         []drawVoxel
	frameLights      []Light
	persistentLights []Light

	fireCooldown int
	muzzleLeft   int
	recoil       float64
	adsBlend     float64

	editor editorState

	autoExplore         bool
	autoExploreDeadline time.Time
	autoExploreRand     *rand.Rand
	autoExploreYaw      float64
	autoExploreTics     int

	glyphs []*ebiten.Image

	audioCtx    *audio.Context
	audioStream *pushAudioStream
	audioPlayer *audio.Player
	audioRand   *rand.Rand

	lastCastDuration time.Duration
	lastLightCount   int
}

// newGame generates the world for a seed, replays saved edits onto it, and
// wires up the scan pool, glyph atlas, and audio output.
func newGame(seed int64) *Game {
	c := generateChunk(seed)
	edits, err := loadEdits(*editsPathFlag, seed)
	if err != nil {
		log.Printf("ignoring edit file: %v", err)
		edits = chunkEdits{Seed: seed}
	}
	lights := applyEdits(c, edits)
	g := &Game{
		chunk:            c,
		pool:             newScanPool(*scanWorkersFlag),
		seed:             seed,
		eye:              startPosition(c),
		persistentLights: lights,
		autoExploreRand:  rand.New(rand.NewSource(time.Now().UnixNano() + 2)),
		audioRand:        rand.New(rand.NewSource(seed ^ 0x5eed)),
		glyphs:           buildGlyphImages(),
	}
	g.editor.edits = edits
	if !*muteFlag {
		ctx := audio.NewContext(audioSampleRate)
		g.audioCtx = ctx
		stream := newPushAudioStream()
		g.audioStream = stream
		if player, err := ctx.NewPlayer(stream); err != nil {
			log.Printf("audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioBufferDuration)
			g.audioPlayer.Play()
		}
	}
	return g
}

// startPosition picks the open cell nearest the chunk center to spawn at.
func startPosition(c *chunk) mgl64.Vec3 {
	mid := mgl64.Vec3{chunkSize / 2, chunkSize / 2, chunkSize / 2}
	best := mid
	bestD := math.MaxFloat64
	for i := range c.tiles {
		t := &c.tiles[i]
		if t.kind != tileAir {
			continue
		}
		d := t.pos.Sub(mid)
		if ds := d.Dot(d); ds < bestD {
			bestD = ds
			best = t.pos
		}
	}
	return best
}

// Update runs one tic: input, movement, gun state, lighting casts, and the
// field-of-view collection that feeds Draw.
func (g *Game) Update() error {
	g.tic++
	g.handleEditorInput()
	if !g.editor.active && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.fire()
	}
	g.handleLookKeys()
	g.applyMovement(g.movementVector())
	if g.autoExplore && g.autoExploreRand.Intn(90) == 0 {
		g.fire()
	}
	g.updateGunState()
	g.refreshLighting()
	g.drawList = collectVisible(g.chunk, g.eye, g.drawList, g.pool)
	return nil
}

// fire starts a shot if the cooldown allows: recoil, muzzle light, sound.
func (g *Game) fire() {
	if g.fireCooldown > 0 {
		return
	}
	g.fireCooldown = fireCooldownTics
	g.muzzleLeft = muzzleFlashTics
	g.recoil = 0.5
	g.playGunshot()
}

// updateGunState advances cooldowns, decays recoil, and eases the gun
// between hip and sights.
func (g *Game) updateGunState() {
	if g.fireCooldown > 0 {
		g.fireCooldown--
	}
	if g.muzzleLeft > 0 {
		g.muzzleLeft--
	}
	g.recoil *= recoilDecay
	target := 0.0
	if !g.editor.active && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		target = 1
	}
	g.adsBlend += (target - g.adsBlend) * adsLerpRate
}

// torchLight is the player's head torch, a warm flickering cone along the
// view.
func (g *Game) torchLight() Light {
	return Light{
		pos:       g.eye,
		color:     rgb{r: 1.0, g: 0.82, b: 0.6},
		rng:       torchRange,
		cone:      true,
		facing:    facingVector(g.yaw, g.pitch),
		halfAngle: torchHalfAngle,
		flicker:   0.15,
	}
}

// muzzleFlashLight is the short white-hot sphere around the muzzle while a
// shot is in flight.
func (g *Game) muzzleFlashLight() Light {
	return Light{
		pos:   g.eye.Add(facingVector(g.yaw, g.pitch).Mul(1.5)),
		color: rgb{r: 1.0, g: 0.95, b: 0.8},
		rng:   muzzleFlashRange,
	}
}

// refreshLighting assembles this frame's lights and casts each into the
// chunk under a fresh generation stamp. Persistent lamps come first so the
// frame cap never silently drops them.
func (g *Game) refreshLighting() {
	start := time.Now()
	lights := g.frameLights[:0]
	lights = append(lights, g.persistentLights...)
	lights = append(lights, nearbyEmitterLights(g.chunk, g.eye, candleLightBudget)...)
	lights = append(lights, g.torchLight())
	if g.muzzleLeft > 0 {
		lights = append(lights, g.muzzleFlashLight())
	}
	if len(lights) > maxFrameLights {
		lights = lights[:maxFrameLights]
	}
	g.frameLights = lights
	g.lastLightCount = len(lights)

	nextLightGen(g.chunk)
	for _, l := range lights {
		castLight(g.chunk, l, g.tic, g.pool)
	}
	g.lastCastDuration = time.Since(start)
}
