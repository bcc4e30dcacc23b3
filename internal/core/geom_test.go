package core

import "testing"

func TestRectIntersects(t *testing.T) {
	// A 60x120 fighter standing at (600, 400)
	body := CenteredRect(600, 400, 60, 120)

	tests := []struct {
		name string
		box  Rect
		want bool
	}{
		{"punch reaching into the body", NewRect(560, 360, 30, 40), true},
		{"punch stopping at the edge", NewRect(540, 360, 30, 40), false},
		{"kick low but inside", NewRect(520, 400, 60, 30), true},
		{"box above the head", NewRect(580, 300, 60, 40), false},
		{"box below the feet", NewRect(580, 460, 60, 10), false},
		{"special swallowing the body", NewRect(500, 300, 300, 300), true},
		{"no attack", Rect{}, false},
		{"zero-width sliver inside", NewRect(600, 350, 0, 50), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.box.Intersects(body); got != tc.want {
				t.Errorf("Intersects() = %v, want %v", got, tc.want)
			}
			if got := body.Intersects(tc.box); got != tc.want {
				t.Errorf("Intersects() (reversed) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(200, 400, 60, 120)
	if r != NewRect(170, 340, 60, 120) {
		t.Fatalf("CenteredRect() = %+v", r)
	}
	if r.Right() != 230 || r.Bottom() != 460 {
		t.Errorf("edges = (%d, %d), want (230, 460)", r.Right(), r.Bottom())
	}

	// Odd sizes round the half down
	odd := CenteredRect(10, 10, 5, 3)
	if odd.X != 8 || odd.Y != 9 {
		t.Errorf("odd CenteredRect() origin = (%d, %d), want (8, 9)", odd.X, odd.Y)
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero value", Rect{}, true},
		{"zero width", NewRect(5, 5, 0, 10), true},
		{"negative height", NewRect(5, 5, 10, -1), true},
		{"unit", NewRect(0, 0, 1, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Empty(); got != tc.want {
				t.Errorf("Empty() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClampToArena(t *testing.T) {
	// Fighter x stays in [w/2, arena-w/2]
	tests := []struct {
		x, want int
	}{
		{400, 400},
		{10, 30},
		{795, 770},
		{30, 30},
		{770, 770},
	}

	for _, tc := range tests {
		if got := Clamp(tc.x, 30, 770); got != tc.want {
			t.Errorf("Clamp(%d, 30, 770) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestAbs(t *testing.T) {
	for in, want := range map[int]int{5: 5, -5: 5, 0: 0} {
		if got := Abs(in); got != want {
			t.Errorf("Abs(%d) = %d, want %d", in, got, want)
		}
	}
}
