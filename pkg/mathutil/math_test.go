package mathutil

import (
	"math"
	"testing"
	"time"
)

func TestAbsDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected time.Duration
	}{
		{"positive", 5 * time.Second, 5 * time.Second},
		{"negative", -5 * time.Second, 5 * time.Second},
		{"zero", 0, 0},
		{"positive millisecond", 100 * time.Millisecond, 100 * time.Millisecond},
		{"negative millisecond", -100 * time.Millisecond, 100 * time.Millisecond},
		{"positive nanosecond", 1, 1},
		{"negative nanosecond", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AbsDuration(tt.input)
			if result != tt.expected {
				t.Errorf("AbsDuration(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		min      float64
		max      float64
		expected float64
	}{
		{"within range", 5.0, 0.0, 10.0, 5.0},
		{"below min", -5.0, 0.0, 10.0, 0.0},
		{"above max", 15.0, 0.0, 10.0, 10.0},
		{"equals min", 0.0, 0.0, 10.0, 0.0},
		{"equals max", 10.0, 0.0, 10.0, 10.0},
		{"negative range within", -5.0, -10.0, 0.0, -5.0},
		{"negative range below", -15.0, -10.0, 0.0, -10.0},
		{"negative range above", 5.0, -10.0, 0.0, 0.0},
		{"zero range", 5.0, 5.0, 5.0, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.val, tt.min, tt.max)
			if result != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.val, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

// Benchmarks

func BenchmarkClamp(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Clamp(float64(i), 0.0, 100.0)
	}
}

// Edge cases

func TestClampEdgeCases(t *testing.T) {
	// Test with infinity
	if Clamp(math.Inf(1), 0, 100) != 100 {
		t.Error("Clamp(+Inf, 0, 100) should be 100")
	}
	if Clamp(math.Inf(-1), 0, 100) != 0 {
		t.Error("Clamp(-Inf, 0, 100) should be 0")
	}
}
