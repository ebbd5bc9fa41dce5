package mathutil

import "testing"

func TestIntClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
		{7, 0, -1, 0},
	}
	for _, tt := range tests {
		if got := IntClamp(tt.x, tt.lo, tt.hi); got != tt.want {
			t.Errorf("IntClamp(%d,%d,%d) = %d, want %d", tt.x, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestIntMinMax(t *testing.T) {
	if IntMin(2, 3) != 2 || IntMax(2, 3) != 3 {
		t.Error("IntMin/IntMax returned the wrong operand")
	}
}
