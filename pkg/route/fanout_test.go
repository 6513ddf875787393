package route

import (
	"testing"

	"github.com/matzehuels/fiberroute/pkg/geom"
)

func TestFanoutLength(t *testing.T) {
	tests := []struct {
		name                      string
		width, offset, minSpacing float64
		wantLen                   float64
		wantOK                    bool
	}{
		{"straight with te", 10, 15, 200, 80, true},
		{"snap before halving", 0.5, 15, 200, 84.75, true},
		{"small deficit", 0.123, 0, 1, 0.44, true},
		{"exactly at spacing", 170, 15, 200, 0, false},
		{"wider than spacing", 500, 15, 200, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FanoutLength(tt.width, tt.offset, tt.minSpacing, DefaultSnapNM)
			if ok != tt.wantOK {
				t.Fatalf("FanoutLength ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.wantLen {
				t.Errorf("FanoutLength = %v, want %v", got, tt.wantLen)
			}
			if got < 0 {
				t.Errorf("FanoutLength = %v, want non-negative", got)
			}
		})
	}
}

func TestFanoutLengthDeterministic(t *testing.T) {
	a, okA := FanoutLength(12.345, 15.5, 200, DefaultSnapNM)
	b, okB := FanoutLength(12.345, 15.5, 200, DefaultSnapNM)
	if a != b || okA != okB {
		t.Errorf("FanoutLength not deterministic: (%v, %v) vs (%v, %v)", a, okA, b, okB)
	}
}

func TestFanoutNotResnapped(t *testing.T) {
	// deficit 0.87 snaps to 0.87, half is 0.435 which is off the 10 nm grid
	got, ok := FanoutLength(0.13, 0, 1, DefaultSnapNM)
	if !ok {
		t.Fatal("FanoutLength ok = false, want true")
	}
	if got != geom.SnapNM(0.87, DefaultSnapNM)/2 {
		t.Errorf("FanoutLength = %v, want %v", got, geom.SnapNM(0.87, DefaultSnapNM)/2)
	}
	if got == geom.SnapNM(got, DefaultSnapNM) {
		t.Errorf("FanoutLength = %v was re-snapped", got)
	}
}
