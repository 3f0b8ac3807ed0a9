package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/EaterOA/AICombat/internal/mind"
)

// controls maps player keys to keyboard keys. Each player key has an
// alternative so WASD works as well as the arrows.
var controls = map[mind.Key][]ebiten.Key{
	mind.KeyRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	mind.KeyUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	mind.KeyLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	mind.KeyDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	mind.KeyFire:  {ebiten.KeySpace},
}

// Keyboard reads player controls from the ebiten keyboard state.
type Keyboard struct {
	pressed func(ebiten.Key) bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{pressed: ebiten.IsKeyPressed}
}

func (k *Keyboard) Pressed(key mind.Key) bool {
	for _, ek := range controls[key] {
		if k.pressed(ek) {
			return true
		}
	}
	return false
}

// edges turns held keys into single presses.
type edges struct {
	pressed func(ebiten.Key) bool
	prev    map[ebiten.Key]bool
	cur     map[ebiten.Key]bool
}

func newEdges(pressed func(ebiten.Key) bool) *edges {
	return &edges{pressed: pressed, prev: map[ebiten.Key]bool{}, cur: map[ebiten.Key]bool{}}
}

// hit reports whether k went down since the last frame.
func (e *edges) hit(k ebiten.Key) bool {
	down := e.pressed(k)
	e.cur[k] = down
	return down && !e.prev[k]
}

// next ends the frame.
func (e *edges) next() {
	e.prev, e.cur = e.cur, e.prev
	clear(e.cur)
}
