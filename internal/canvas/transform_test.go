package canvas

import "testing"

func TestViewportCenterOnBoard(t *testing.T) {
	tests := []struct {
		name  string
		vp    Viewport
		wantX float64
		wantY float64
	}{
		{
			name:  "identity transform",
			vp:    Viewport{Width: 800, Height: 600, Zoom: 1},
			wantX: 400,
			wantY: 300,
		},
		{
			name:  "zoomed 2x panned 50,50",
			vp:    Viewport{Width: 800, Height: 600, PanX: 50, PanY: 50, Zoom: 2},
			wantX: (400 - 50) / 2,
			wantY: (300 - 50) / 2,
		},
		{
			name:  "negative pan",
			vp:    Viewport{Width: 1000, Height: 400, PanX: -100, PanY: -20, Zoom: 1},
			wantX: 600,
			wantY: 220,
		},
		{
			name:  "zero zoom falls back to 1",
			vp:    Viewport{Width: 800, Height: 600, Zoom: 0},
			wantX: 400,
			wantY: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.vp.CenterOnBoard()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("CenterOnBoard() = (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
