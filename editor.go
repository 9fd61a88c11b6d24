package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// how far the editor cursor ray reaches, in cells
const editorReach = 12.0

// placeableKinds is the editor palette, in cycle order.
var placeableKinds = []tileKind{tileRock, tileCandle, tileMushroom}

// editorState is the in-game tile editor: a palette cursor plus the edits
// accumulated for this seed.
type editorState struct {
	active    bool
	paletteIx int
	edits     chunkEdits
}

// cellEdit is one persisted tile override.
type cellEdit struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
	Kind string `json:"kind"`
}

// lightSpec is one persisted placed light.
type lightSpec struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	R     float32 `json:"r"`
	G     float32 `json:"g"`
	B     float32 `json:"b"`
	Range int     `json:"range"`
}

// chunkEdits is the on-disk edit file. Edits belong to the seed they were
// made on and are ignored for any other.
type chunkEdits struct {
	Seed   int64       `json:"seed"`
	Cells  []cellEdit  `json:"cells"`
	Lights []lightSpec `json:"lights"`
}

// recordCell stores a tile override, replacing any earlier edit of the same
// cell.
func (e *chunkEdits) recordCell(p gridPoint, kind tileKind) {
	for i := range e.Cells {
		c := &e.Cells[i]
		if c.X == p.x && c.Y == p.y && c.Z == p.z {
			c.Kind = kind.name()
			return
		}
	}
	e.Cells = append(e.Cells, cellEdit{X: p.x, Y: p.y, Z: p.z, Kind: kind.name()})
}

// loadEdits reads the edit file. A missing file or a seed mismatch is a
// clean start.
func loadEdits(path string, seed int64) (chunkEdits, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return chunkEdits{Seed: seed}, nil
	}
	if err != nil {
		return chunkEdits{}, err
	}
	var e chunkEdits
	if err := json.Unmarshal(data, &e); err != nil {
		return chunkEdits{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	if e.Seed != seed {
		return chunkEdits{Seed: seed}, nil
	}
	return e, nil
}

// applyEdits replays saved cell overrides onto a freshly generated chunk
// and returns the persisted lights. Unknown kinds and out-of-chunk cells
// are skipped; light ranges are clamped to what the cast tables cover.
func applyEdits(c *chunk, e chunkEdits) []Light {
	for _, ce := range e.Cells {
		kind, ok := kindNames[ce.Kind]
		if !ok || !c.inBounds(ce.X, ce.Y, ce.Z) {
			continue
		}
		c.at(ce.X, ce.Y, ce.Z).kind = kind
	}
	if len(e.Cells) > 0 {
		c.emittersDirty = true
	}
	lights := make([]Light, 0, len(e.Lights))
	for _, ls := range e.Lights {
		rng := ls.Range
		if rng <= 0 || rng > maxCastRange {
			rng = lightRange
		}
		lights = append(lights, Light{
			pos:        mgl64.Vec3{ls.X, ls.Y, ls.Z},
			color:      rgb{r: ls.R, g: ls.G, b: ls.B},
			rng:        rng,
			persistent: true,
		})
	}
	return lights
}

// saveEdits writes the session's edits next to the binary. Failures are
// logged and the session keeps running.
func (g *Game) saveEdits() {
	g.editor.edits.Seed = g.seed
	data, err := json.MarshalIndent(&g.editor.edits, "", "  ")
	if err != nil {
		log.Printf("encoding edits: %v", err)
		return
	}
	if err := os.WriteFile(*editsPathFlag, data, 0o644); err != nil {
		log.Printf("saving edits to %s: %v", *editsPathFlag, err)
	}
}

// handleEditorInput toggles the editor and routes its place, dig, palette,
// and lamp actions.
func (g *Game) handleEditorInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.editor.active = !g.editor.active
	}
	if !g.editor.active {
		return
	}
	n := len(placeableKinds)
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.editor.paletteIx = (g.editor.paletteIx + n - 1) % n
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.editor.paletteIx = (g.editor.paletteIx + 1) % n
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.editorPlace(placeableKinds[g.editor.paletteIx])
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.editorRemove()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.editorPlaceLight()
	}
}

// editorPlace puts a tile into the last open cell before the surface the
// crosshair rests on. Placing into the player's own cell is refused.
func (g *Game) editorPlace(kind tileKind) {
	dir := facingVector(g.yaw, g.pitch)
	open, _, ok := lastOpenOnRay(g.chunk, g.eye, dir, editorReach)
	if !ok || open == cellOf(g.eye) {
		return
	}
	g.setCell(open, kind)
}

// editorRemove digs out the tile under the crosshair.
func (g *Game) editorRemove() {
	dir := facingVector(g.yaw, g.pitch)
	hit, _, ok := rayHit(g.chunk, g.eye, dir, editorReach)
	if !ok {
		return
	}
	g.setCell(cellOf(hit.pos), tileAir)
}

// editorPlaceLight drops a persistent lamp into the targeted open cell.
func (g *Game) editorPlaceLight() {
	dir := facingVector(g.yaw, g.pitch)
	open, _, ok := lastOpenOnRay(g.chunk, g.eye, dir, editorReach)
	if !ok {
		return
	}
	t := g.chunk.at(open.x, open.y, open.z)
	l := Light{pos: t.pos, color: rgb{r: 0.9, g: 0.8, b: 0.6}, rng: lightRange, persistent: true}
	g.persistentLights = append(g.persistentLights, l)
	g.editor.edits.Lights = append(g.editor.edits.Lights, lightSpec{
		X: t.pos.X(), Y: t.pos.Y(), Z: t.pos.Z(),
		R: l.color.r, G: l.color.g, B: l.color.b,
		Range: l.rng,
	})
	g.saveEdits()
}

// setCell mutates one tile, invalidates the emitter cache, and persists the
// override.
func (g *Game) setCell(p gridPoint, kind tileKind) {
	if !g.chunk.inBounds(p.x, p.y, p.z) {
		return
	}
	g.chunk.at(p.x, p.y, p.z).kind = kind
	g.chunk.emittersDirty = true
	g.editor.edits.recordCell(p, kind)
	g.saveEdits()
}

// drawEditorHUD shows the palette line and a ring on the targeted cell.
func (g *Game) drawEditorHUD(screen *ebiten.Image) {
	kind := placeableKinds[g.editor.paletteIx]
	msg := fmt.Sprintf("edit: %s  [ ] cycle  LMB place  RMB dig  L lamp", kind.name())
	g.drawAtlasText(screen, 8, windowHeight-24, msg, rgb{r: 0.9, g: 0.85, b: 0.6})
	dir := facingVector(g.yaw, g.pitch)
	open, _, ok := lastOpenOnRay(g.chunk, g.eye, dir, editorReach)
	if !ok {
		return
	}
	mvp := viewProjection(g.eye, dir)
	t := g.chunk.at(open.x, open.y, open.z)
	if sx, sy, z, pOk := projectToScreen(mvp, t.pos); pOk {
		g.drawSprite(screen, glyphMuzzle, sx, sy, spriteHeight(z), 0, rgb{r: 0.3, g: 1, b: 0.4})
	}
}
