package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// step returns p moved one cell in direction d, wrapping at the board edges.
// Only the four movement directions may reach this point.
func (e *Engine) step(p core.Pixel, d core.Direction) core.Pixel {
	cell, board := e.cfg.Board.CellSize, e.cfg.Board.Size

	switch d {
	case core.DirUp:
		p.Y = core.SubPixel(p.Y, cell, board)
	case core.DirDown:
		p.Y = core.AddPixel(p.Y, cell, board)
	case core.DirLeft:
		p.X = core.SubPixel(p.X, cell, board)
	case core.DirRight:
		p.X = core.AddPixel(p.X, cell, board)
	default:
		panic(fmt.Sprintf("snake: invalid direction %d reached movement", int(d)))
	}
	return p
}

// Advance pushes a new head one cell along d and drops the tail, or keeps the
// tail when a growth is pending.
func (e *Engine) Advance(d core.Direction) {
	head := e.step(e.snake[0], d)

	e.snake = append(e.snake, core.Pixel{})
	copy(e.snake[1:], e.snake[:len(e.snake)-1])
	e.snake[0] = head

	if e.growPending {
		e.growPending = false
		return
	}
	e.snake = e.snake[:len(e.snake)-1]
}

// HasSelfCollision reports whether any two snake cells share coordinates.
func (e *Engine) HasSelfCollision() bool {
	seen := make(map[core.Pixel]struct{}, len(e.snake))
	for _, p := range e.snake {
		if _, ok := seen[p]; ok {
			return true
		}
		seen[p] = struct{}{}
	}
	return false
}

// occupies reports whether any snake cell is at p.
func (e *Engine) occupies(p core.Pixel) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}
