package entity

import "testing"

func TestValidIdeaColor(t *testing.T) {
	cases := []struct {
		name  string
		color IdeaColor
		want  bool
	}{
		{"yellow", IdeaColorYellow, true},
		{"pink", IdeaColorPink, true},
		{"blue", IdeaColorBlue, true},
		{"green", IdeaColorGreen, true},
		{"orange", IdeaColorOrange, true},
		{"purple", IdeaColorPurple, true},
		{"default is valid", DefaultIdeaColor, true},
		{"empty", IdeaColor(""), false},
		{"hex value", IdeaColor("#ffcc00"), false},
		{"uppercase", IdeaColor("YELLOW"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidIdeaColor(tc.color); got != tc.want {
				t.Errorf("ValidIdeaColor(%q) = %v, want %v", tc.color, got, tc.want)
			}
		})
	}
}
