package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

var upVector = mgl64.Vec3{0, 1, 0}

// facingVector converts yaw and pitch into a unit view direction. Yaw zero
// looks along positive z; positive pitch tilts the view upward.
func facingVector(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{math.Sin(yaw) * cp, math.Sin(pitch), math.Cos(yaw) * cp}
}

// turnToward steps an angle toward target by at most step, taking the short
// way around the circle.
func turnToward(current, target, step float64) float64 {
	diff := math.Mod(target-current, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	}
	if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	if diff > step {
		diff = step
	}
	if diff < -step {
		diff = -step
	}
	return current + diff
}

// enableAutoExplore schedules scripted wandering for a limited duration.
func (g *Game) enableAutoExplore(duration time.Duration) {
	g.autoExplore = true
	g.autoExploreDeadline = time.Now().Add(duration)
	if g.autoExploreRand == nil {
		g.autoExploreRand = rand.New(rand.NewSource(time.Now().UnixNano() + 3))
	}
	g.autoExploreTics = 0
}

// handleLookKeys applies arrow-key rotation and keeps pitch short of the
// poles.
func (g *Game) handleLookKeys() {
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.yaw += rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.yaw -= rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.pitch += rotateSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.pitch -= rotateSpeed
	}
	if g.pitch > pitchLimit {
		g.pitch = pitchLimit
	}
	if g.pitch < -pitchLimit {
		g.pitch = -pitchLimit
	}
}

// movementVector selects either manual or automatic movement for this tic.
func (g *Game) movementVector() mgl64.Vec3 {
	if g.autoExplore {
		if time.Now().After(g.autoExploreDeadline) {
			g.autoExplore = false
			return mgl64.Vec3{}
		}
		return g.autoExploreVector()
	}
	return g.manualMovementVector()
}

// manualMovementVector returns the WASD flight vector in the current yaw
// frame, with Space and Control moving straight up and down.
func (g *Game) manualMovementVector() mgl64.Vec3 {
	forward := mgl64.Vec3{math.Sin(g.yaw), 0, math.Cos(g.yaw)}
	right := forward.Cross(upVector)
	var v mgl64.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		v = v.Add(forward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		v = v.Sub(forward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		v = v.Add(right)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		v = v.Sub(right)
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		v = v.Add(upVector)
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		v = v.Sub(upVector)
	}
	if l := v.Len(); l > 0 {
		v = v.Mul(moveSpeed / l)
	}
	return v
}

// applyMovement advances the eye by delta, sliding along walls by testing
// each axis separately. Moves that would leave the chunk or enter rock are
// dropped.
func (g *Game) applyMovement(delta mgl64.Vec3) {
	for axis := 0; axis < 3; axis++ {
		if delta[axis] == 0 {
			continue
		}
		next := g.eye
		next[axis] += delta[axis]
		cell := cellOf(next)
		if !g.chunk.inBounds(cell.x, cell.y, cell.z) {
			continue
		}
		if !g.chunk.at(cell.x, cell.y, cell.z).kind.transparent() {
			continue
		}
		g.eye = next
	}
}

// autoExploreVector wanders the cave, steering away from walls a few cells
// ahead and settling the pitch back to level.
func (g *Game) autoExploreVector() mgl64.Vec3 {
	if g.autoExploreRand == nil {
		g.autoExploreRand = rand.New(rand.NewSource(time.Now().UnixNano() + 4))
	}
	for attempts := 0; attempts < 5; attempts++ {
		if g.autoExploreTics <= 0 {
			g.randomizeAutoExploreHeading()
		}
		dir := facingVector(g.autoExploreYaw, 0)
		if _, d, ok := rayHit(g.chunk, g.eye, dir, 4); ok && d < 3 {
			g.autoExploreTics = 0
			continue
		}
		g.autoExploreTics--
		g.yaw = turnToward(g.yaw, g.autoExploreYaw, rotateSpeed)
		g.pitch = turnToward(g.pitch, 0, rotateSpeed/2)
		return dir.Mul(moveSpeed)
	}
	return mgl64.Vec3{}
}

// randomizeAutoExploreHeading chooses a new wander heading and how long to
// hold it.
func (g *Game) randomizeAutoExploreHeading() {
	g.autoExploreYaw = g.autoExploreRand.Float64() * 2 * math.Pi
	g.autoExploreTics = 20 + g.autoExploreRand.Intn(50)
}
