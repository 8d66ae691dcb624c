package canvas

import (
	"testing"

	"ideaboard-be/internal/entity"
)

func idea(x, y float64) *entity.Idea {
	return &entity.Idea{X: x, Y: y}
}

func TestComputeBounds(t *testing.T) {
	tests := []struct {
		name        string
		ideas       []*entity.Idea
		viewportW   float64
		viewportH   float64
		wantWidth   float64
		wantHeight  float64
		wantOffsetX float64
		wantOffsetY float64
	}{
		{
			name:       "empty set equals viewport",
			ideas:      nil,
			viewportW:  1920,
			viewportH:  1080,
			wantWidth:  1920,
			wantHeight: 1080,
		},
		{
			name:        "single note at origin",
			ideas:       []*entity.Idea{idea(0, 0)},
			viewportW:   1920,
			viewportH:   1080,
			wantWidth:   entity.DefaultIdeaWidth + 2*Padding,
			wantHeight:  entity.DefaultIdeaHeight + 2*Padding,
			wantOffsetX: Padding,
			wantOffsetY: Padding,
		},
		{
			name:        "note dragged into negative space",
			ideas:       []*entity.Idea{idea(-300, -100), idea(100, 50)},
			viewportW:   800,
			viewportH:   600,
			wantWidth:   400 + entity.DefaultIdeaWidth + 2*Padding,
			wantHeight:  150 + entity.DefaultIdeaHeight + 2*Padding,
			wantOffsetX: Padding + 300,
			wantOffsetY: Padding + 100,
		},
		{
			name:        "all notes at same point",
			ideas:       []*entity.Idea{idea(500, 500), idea(500, 500)},
			viewportW:   800,
			viewportH:   600,
			wantWidth:   entity.DefaultIdeaWidth + 2*Padding,
			wantHeight:  entity.DefaultIdeaHeight + 2*Padding,
			wantOffsetX: Padding - 500,
			wantOffsetY: Padding - 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBounds(tt.ideas, tt.viewportW, tt.viewportH)

			if got.Width != tt.wantWidth {
				t.Errorf("Width = %v, want %v", got.Width, tt.wantWidth)
			}
			if got.Height != tt.wantHeight {
				t.Errorf("Height = %v, want %v", got.Height, tt.wantHeight)
			}
			if got.OffsetX != tt.wantOffsetX {
				t.Errorf("OffsetX = %v, want %v", got.OffsetX, tt.wantOffsetX)
			}
			if got.OffsetY != tt.wantOffsetY {
				t.Errorf("OffsetY = %v, want %v", got.OffsetY, tt.wantOffsetY)
			}
		})
	}
}

func TestComputeBoundsNoNegativeRender(t *testing.T) {
	// No matter how far up/left a note is dragged, offset must shift it back
	// to padding distance from the origin.
	ideas := []*entity.Idea{idea(-5000, -9000), idea(0, 0), idea(250, 80)}
	b := ComputeBounds(ideas, 1024, 768)

	for _, i := range ideas {
		x := i.X + b.OffsetX
		y := i.Y + b.OffsetY
		if x < Padding || y < Padding {
			t.Errorf("note at (%v,%v) renders at (%v,%v), inside padding margin", i.X, i.Y, x, y)
		}
	}
}
