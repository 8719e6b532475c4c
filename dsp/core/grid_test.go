package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewTimeGridLength(t *testing.T) {
	g, err := NewTimeGrid(1, 1000)
	if err != nil {
		t.Fatalf("NewTimeGrid() error = %v", err)
	}
	if g.Len() != 1000 {
		t.Fatalf("Len() = %d, want 1000", g.Len())
	}
	if g.SampleRate() != 1000 {
		t.Fatalf("SampleRate() = %v, want 1000", g.SampleRate())
	}
}

func TestNewTimeGridInvalid(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		rate     float64
	}{
		{"zero duration", 0, 1000},
		{"zero rate", 1, 0},
		{"negative duration", -1, 1000},
		{"negative rate", 1, -48000},
		{"single sample", 0.001, 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTimeGrid(tc.duration, tc.rate)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("NewTimeGrid(%g, %g) error = %v, want ErrInvalidParameter", tc.duration, tc.rate, err)
			}
		})
	}
}

func TestTimeGridTimes(t *testing.T) {
	g, err := NewTimeGrid(0.004, 1000)
	if err != nil {
		t.Fatalf("NewTimeGrid() error = %v", err)
	}

	times := g.Times()
	if len(times) != g.Len() {
		t.Fatalf("len(Times()) = %d, want %d", len(times), g.Len())
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			t.Fatalf("times not strictly increasing at %d: %v <= %v", i, times[i], times[i-1])
		}
		if math.Abs(times[i]-times[i-1]-0.001) > 1e-15 {
			t.Fatalf("uneven spacing at %d: %v", i, times[i]-times[i-1])
		}
	}
	if times[0] != 0 {
		t.Fatalf("times[0] = %v, want 0", times[0])
	}
}

func TestTimeGridAt(t *testing.T) {
	g, err := NewTimeGrid(1, 250)
	if err != nil {
		t.Fatalf("NewTimeGrid() error = %v", err)
	}
	if got := g.At(25); math.Abs(got-0.1) > 1e-15 {
		t.Fatalf("At(25) = %v, want 0.1", got)
	}
	if g.Dt() != 1.0/250 {
		t.Fatalf("Dt() = %v, want %v", g.Dt(), 1.0/250)
	}
}

func TestTimeGridValid(t *testing.T) {
	var zero TimeGrid
	if zero.Valid() {
		t.Fatal("zero grid reported valid")
	}
	g, err := NewTimeGrid(1, 100)
	if err != nil {
		t.Fatalf("NewTimeGrid() error = %v", err)
	}
	if !g.Valid() {
		t.Fatal("constructed grid reported invalid")
	}
}
