package canvas

import "ideaboard-be/internal/entity"

const (
	// Padding kept around the outermost notes on every side of the board.
	Padding = 200.0
)

// Bounds is the pannable content rectangle for a room canvas: large enough
// to contain every note plus padding, with a translation offset that keeps
// the most negative note coordinate at padding distance from the origin so
// nothing renders off-canvas.
type Bounds struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// ComputeBounds derives the canvas rectangle from the current note set.
// An empty set yields the viewport itself with zero offset. Recomputation is
// cheap and idempotent, so callers rerun it on every note-set change.
func ComputeBounds(ideas []*entity.Idea, viewportW, viewportH float64) Bounds {
	if len(ideas) == 0 {
		return Bounds{Width: viewportW, Height: viewportH}
	}

	minX, minY := ideas[0].X, ideas[0].Y
	maxX, maxY := ideas[0].X, ideas[0].Y
	for _, idea := range ideas[1:] {
		if idea.X < minX {
			minX = idea.X
		}
		if idea.Y < minY {
			minY = idea.Y
		}
		if idea.X > maxX {
			maxX = idea.X
		}
		if idea.Y > maxY {
			maxY = idea.Y
		}
	}

	// One default footprint past the far edge, padding on all sides.
	width := (maxX - minX) + entity.DefaultIdeaWidth + 2*Padding
	height := (maxY - minY) + entity.DefaultIdeaHeight + 2*Padding

	return Bounds{
		Width:   width,
		Height:  height,
		OffsetX: Padding - minX,
		OffsetY: Padding - minY,
	}
}
