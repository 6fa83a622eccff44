// Package core provides fundamental types and utilities shared by the engine
// and the platform. It has no external dependencies (especially no Bubble Tea)
// so game logic stays pure and testable.
package core

import "math"

// Pixel is a grid coordinate measured in board units.
// Valid pixels sit on multiples of the cell size inside the board.
type Pixel struct {
	X, Y int
}

// Distance returns the Euclidean distance between two pixels.
func (p Pixel) Distance(other Pixel) float64 {
	return math.Hypot(float64(p.X-other.X), float64(p.Y-other.Y))
}

// AddPixel moves a coordinate one cell forward, re-entering at 0 past the edge.
func AddPixel(c, cell, board int) int {
	return (c + cell) % board
}

// SubPixel moves a coordinate one cell back, re-entering at the far edge below 0.
func SubPixel(c, cell, board int) int {
	return (c - cell + board) % board
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
