package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// sprites projected this far outside the viewport are dropped before drawing
const spriteCullMargin = 64

// viewProjection builds the combined camera matrix for the current eye and
// facing.
func viewProjection(eye, facing mgl64.Vec3) mgl64.Mat4 {
	proj := mgl64.Perspective(cameraFOV, float64(windowWidth)/float64(windowHeight), cameraNear, cameraFar)
	view := mgl64.LookAtV(eye, eye.Add(facing), upVector)
	return proj.Mul4(view)
}

// projectToScreen maps a world position through the camera matrix to screen
// pixels and an NDC depth. ok is false behind the camera or outside the
// depth range. Screen y grows downward, so the NDC y axis is flipped here.
func projectToScreen(mvp mgl64.Mat4, world mgl64.Vec3) (sx, sy, ndcZ float64, ok bool) {
	clip := mvp.Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, 0, false
	}
	sx = ndc.X()*windowWidth/2 + windowWidth/2
	sy = -ndc.Y()*windowHeight/2 + windowHeight/2
	return sx, sy, ndc.Z(), true
}

// spriteHeight converts an NDC depth to the sprite's on-screen pixel height.
func spriteHeight(ndcZ float64) float64 {
	return (1 - ndcZ) * depthScale
}

// depthFade darkens sprites with distance on top of their illumination.
func depthFade(ndcZ float64) float32 {
	return float32(math.Pow(math.Max(0, math.Min(1, 1-ndcZ)), 1.1))
}

// drawSprite draws one atlas glyph centered at a screen position, scaled to
// heightPx and tinted.
func (g *Game) drawSprite(screen *ebiten.Image, glyph int, sx, sy, heightPx, rot float64, tint rgb) {
	if heightPx < 1 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-glyphWidth/2, -glyphHeight/2)
	if rot != 0 {
		op.GeoM.Rotate(rot)
	}
	s := heightPx / glyphHeight
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.Scale(tint.r, tint.g, tint.b, 1)
	screen.DrawImage(g.glyphs[glyph], op)
}

// drawAtlasText draws a line of HUD text from the atlas ASCII cells.
func (g *Game) drawAtlasText(screen *ebiten.Image, x, y float64, s string, tint rgb) {
	for i, r := range s {
		gl := glyphForRune(r)
		if gl == glyphBlank {
			continue
		}
		cx := x + float64(i)*glyphWidth + glyphWidth/2
		g.drawSprite(screen, gl, cx, y+glyphHeight/2, glyphHeight, 0, tint)
	}
}

// drawVoxels paints the visible set far to near. Every voxel gets a dark
// backdrop block before its glyph, so nearer cells occlude what lies behind
// them.
func (g *Game) drawVoxels(screen *ebiten.Image, mvp mgl64.Mat4) {
	ambient := rgb{r: ambientLevel, g: ambientLevel, b: ambientLevel}
	backdrop := rgb{r: 0.02, g: 0.02, b: 0.03}
	for _, dv := range g.drawList {
		t := dv.t
		sx, sy, z, ok := projectToScreen(mvp, t.pos)
		if !ok {
			continue
		}
		if sx < -spriteCullMargin || sx > windowWidth+spriteCullMargin ||
			sy < -spriteCullMargin || sy > windowHeight+spriteCullMargin {
			continue
		}
		hpx := spriteHeight(z)
		if hpx < 1 {
			continue
		}
		fade := depthFade(z)
		lit := t.kind.baseColor().mul(ambient.add(illuminationOf(g.chunk, t))).scaled(fade)
		g.drawSprite(screen, glyphSolid, sx, sy, hpx, 0, backdrop)
		g.drawSprite(screen, t.kind.glyph(), sx, sy, hpx, t.kind.spriteRotation(), lit)
	}
}

// drawWeapon overlays the first-person gun. Gun cells live in camera space:
// x to the player's right, y up, z forward, so the whole model follows the
// view after rotation by yaw and pitch. Aiming down sights centers the gun
// and raises it to the eye line; recoil pulls it back and kicks it up.
func (g *Game) drawWeapon(screen *ebiten.Image, mvp mgl64.Mat4) {
	camRot := mgl64.Rotate3DY(g.yaw).Mul3(mgl64.Rotate3DX(-g.pitch))
	kick := mgl64.Rotate3DX(-g.recoil * 0.6)
	ambient := rgb{r: ambientLevel, g: ambientLevel, b: ambientLevel}
	var illum rgb
	if cell := cellOf(g.eye); g.chunk.inBounds(cell.x, cell.y, cell.z) {
		illum = illuminationOf(g.chunk, g.chunk.at(cell.x, cell.y, cell.z))
	}
	for y := 0; y < gunModelHeight; y++ {
		for x := 0; x < gunModelWidth; x++ {
			kind := playerGunModel[y][x]
			if kind == tileAir {
				continue
			}
			local := mgl64.Vec3{
				-(1 - g.adsBlend) * 0.9,
				float64(gunModelHeight-1-y)*gunScale*0.5 - 1.2 + g.adsBlend*0.55,
				float64(gunModelWidth-x)*gunScale*gunScale + 0.5 - g.recoil,
			}
			world := g.eye.Add(camRot.Mul3x1(kick.Mul3x1(local)))
			sx, sy, z, ok := projectToScreen(mvp, world)
			if !ok {
				continue
			}
			tint := kind.baseColor().mul(ambient.add(illum))
			g.drawSprite(screen, kind.glyph(), sx, sy, spriteHeight(z)*gunScale, kind.spriteRotation(), tint)
		}
	}
}

// Draw renders the visible voxels, the weapon overlay, the crosshair, and
// any active HUD layers.
func (g *Game) Draw(screen *ebiten.Image) {
	mvp := viewProjection(g.eye, facingVector(g.yaw, g.pitch))
	g.drawVoxels(screen, mvp)
	g.drawWeapon(screen, mvp)
	g.drawSprite(screen, glyphCrosshair, windowWidth/2, windowHeight/2, glyphHeight, 0, rgb{r: 0.9, g: 0.9, b: 0.9})
	if g.editor.active {
		g.drawEditorHUD(screen)
	}
	if *debugFlag {
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nVoxels: %d\nLights: %d\nCast: %.2f ms",
			ebiten.ActualFPS(), ebiten.ActualTPS(), len(g.drawList), g.lastLightCount,
			g.lastCastDuration.Seconds()*1000)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return windowWidth, windowHeight }
