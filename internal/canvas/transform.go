package canvas

// Viewport describes the client's current view of the board: screen size,
// pan translation and zoom factor.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	PanX   float64 `json:"pan_x"`
	PanY   float64 `json:"pan_y"`
	Zoom   float64 `json:"zoom"`
}

// ToBoard maps a screen coordinate into board space through the inverse of
// the pan/zoom transform.
func (v Viewport) ToBoard(screenX, screenY float64) (float64, float64) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (screenX - v.PanX) / zoom, (screenY - v.PanY) / zoom
}

// CenterOnBoard returns the board position of the viewport center. New notes
// spawn here so they always appear in front of the user regardless of how
// far the board is panned or zoomed.
func (v Viewport) CenterOnBoard() (float64, float64) {
	return v.ToBoard(v.Width/2, v.Height/2)
}
