package main

import "recess-server/protocol"

// Arena dimensions (world units)
const (
	ArenaWidth  = 1408.0
	ArenaHeight = 792.0
)

// Obstacle type names as they appear on the wire
const (
	ObstacleCoop     = "CHICKEN_COOP"
	ObstacleBush     = "BUSH"
	ObstacleBench    = "BENCH"
	ObstacleTree     = "TREE"
	ObstacleSwingSet = "SWING_SET"
)

const (
	coopWidth      = 120.0
	coopHeight     = 115.0
	bushSize       = 60.0
	benchWidth     = 80.0
	benchHeight    = 40.0
	treeWidth      = 50.0
	treeHeight     = 80.0
	swingSetWidth  = 100.0
	swingSetHeight = 120.0
)

// DefaultObstacleLayout returns the static arena layout. It is deterministic:
// every room gets an identical copy, and candidates that would leave the
// playfield margins or overlap an earlier obstacle are skipped.
func DefaultObstacleLayout() []protocol.Obstacle {
	var obstacles []protocol.Obstacle

	isValid := func(x, y, w, h float64) bool {
		if x < 200 || x+w > ArenaWidth-200 {
			return false
		}
		if y < 50 || y+h > ArenaHeight-50 {
			return false
		}
		for _, obs := range obstacles {
			if !(x+w < obs.X || x > obs.X+obs.Width ||
				y+h < obs.Y || y > obs.Y+obs.Height) {
				return false
			}
		}
		return true
	}

	place := func(typ string, x, y, w, h float64, canHide bool) {
		if isValid(x, y, w, h) {
			obstacles = append(obstacles, protocol.Obstacle{
				Type: typ, X: x, Y: y, Width: w, Height: h, CanHide: canHide,
			})
		}
	}

	// Chicken coop is always top-center; it skips the validity check so the
	// refill target exists in every layout.
	obstacles = append(obstacles, protocol.Obstacle{
		Type:   ObstacleCoop,
		X:      ArenaWidth/2 - coopWidth/2,
		Y:      20,
		Width:  coopWidth,
		Height: coopHeight,
	})

	bushes := [][2]float64{{350, 200}, {600, 400}, {450, 550}, {800, 150}, {700, 500}}
	for _, p := range bushes {
		place(ObstacleBush, p[0], p[1], bushSize, bushSize, true)
	}

	benches := [][2]float64{{400, 350}, {650, 250}, {500, 150}}
	for _, p := range benches {
		place(ObstacleBench, p[0], p[1], benchWidth, benchHeight, false)
	}

	trees := [][2]float64{{300, 450}, {850, 350}, {550, 80}}
	for _, p := range trees {
		place(ObstacleTree, p[0], p[1], treeWidth, treeHeight, false)
	}

	place(ObstacleSwingSet, 750, 500, swingSetWidth, swingSetHeight, false)

	return obstacles
}

// findCoop returns the refill obstacle, or nil if the layout has none.
func findCoop(obstacles []protocol.Obstacle) *protocol.Obstacle {
	for i := range obstacles {
		if obstacles[i].Type == ObstacleCoop {
			return &obstacles[i]
		}
	}
	return nil
}
