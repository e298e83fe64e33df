package tui

import (
	"math"

	"github.com/san-kum/disp4b/internal/geom"
)

// terminal cells are roughly twice as tall as they are wide
const cellAspect = 2.0

func newCanvas(w, h int) [][]rune {
	canvas := make([][]rune, h)
	for i := range canvas {
		canvas[i] = make([]rune, w)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	return canvas
}

// project maps a point to the plane with a cabinet projection of z.
func project(p geom.Point) (float64, float64) {
	const depth = 0.5
	return p.X + depth*p.Z*math.Cos(math.Pi/6), p.Y + depth*p.Z*math.Sin(math.Pi/6)
}

// drawQuadruplet draws the six pair edges of q and labels its points 0..3.
func drawQuadruplet(canvas [][]rune, w, h int, q geom.Quadruplet) {
	var xs, ys [4]float64
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range q {
		xs[i], ys[i] = project(p)
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	spanX := (maxX - minX) * cellAspect
	spanY := maxY - minY
	scale := math.Inf(1)
	if spanX > 0 {
		scale = float64(w-3) / spanX
	}
	if spanY > 0 {
		scale = math.Min(scale, float64(h-3)/spanY)
	}
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	var px, py [4]int
	for i := range q {
		px[i] = w/2 + int(math.Round((xs[i]-cx)*cellAspect*scale))
		py[i] = h/2 - int(math.Round((ys[i]-cy)*scale))
	}

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			drawLine(canvas, w, h, px[i], py[i], px[j], py[j], '·')
		}
	}
	for i := 0; i < 4; i++ {
		set(canvas, px[i], py[i], rune('0'+i), w, h)
	}
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}

func drawLine(canvas [][]rune, w, h, x1, y1, x2, y2 int, c rune) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		set(canvas, x1, y1, c, w, h)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
