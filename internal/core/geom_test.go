package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, expected 12", r.Right())
	}
	if r.Bottom() != 7 {
		t.Errorf("Bottom() = %d, expected 7", r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{0, 0, true},
		{9, 9, true},
		{5, 5, true},
		{10, 5, false},
		{5, 10, false},
		{-1, 0, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(80, 24, 20, 10)
	if r != NewRect(30, 7, 20, 10) {
		t.Errorf("CenteredRect = %+v", r)
	}

	// Larger than the area: starts off-screen
	r = CenteredRect(10, 10, 14, 12)
	if r.X != -2 || r.Y != -1 {
		t.Errorf("oversized CenteredRect origin = (%d, %d), expected (-2, -1)", r.X, r.Y)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(4, 4, 10, 6).Inset(1)
	if r != NewRect(5, 5, 8, 4) {
		t.Errorf("Inset(1) = %+v", r)
	}

	// Never negative
	r = NewRect(0, 0, 3, 1).Inset(2)
	if r.W != 0 || r.H != 0 {
		t.Errorf("Inset beyond size = %+v, expected zero size", r)
	}
}
