package palette

import (
	"math"
	"testing"
)

// makeSamples repeats each color the given number of times.
func makeSamples(colors []Color, counts []int) []Color {
	var samples []Color
	for i, c := range colors {
		for j := 0; j < counts[i]; j++ {
			samples = append(samples, c)
		}
	}
	return samples
}

func TestExtractReturnsExactlyK(t *testing.T) {
	samples := makeSamples(
		[]Color{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0}, {128, 64, 32}, {10, 200, 150}},
		[]int{50, 40, 30, 20, 10, 5},
	)

	for k := 1; k <= 10; k++ {
		entries, err := Extract(samples, k)
		if err != nil {
			t.Fatalf("Extract(k=%d) failed: %v", k, err)
		}
		if len(entries) != k {
			t.Errorf("Extract(k=%d) returned %d entries", k, len(entries))
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	samples := makeSamples(
		[]Color{{200, 10, 10}, {10, 200, 10}, {10, 10, 200}, {100, 100, 100}, {250, 250, 0}, {0, 250, 250}, {123, 45, 67}},
		[]int{100, 80, 60, 40, 20, 10, 5},
	)

	first, err := Extract(samples, 4)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	for run := 0; run < 5; run++ {
		again, err := Extract(samples, 4)
		if err != nil {
			t.Fatalf("Extract failed on run %d: %v", run, err)
		}
		for i := range first {
			if again[i].Color != first[i].Color || again[i].Population != first[i].Population {
				t.Fatalf("run %d entry %d differs: %+v vs %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestExtractInvalidInput(t *testing.T) {
	if _, err := Extract(nil, 3); err == nil {
		t.Error("Extract with empty samples should fail")
	}
	if _, err := Extract([]Color{{1, 2, 3}}, 0); err == nil {
		t.Error("Extract with k=0 should fail")
	}
	if _, err := Extract([]Color{{1, 2, 3}}, -1); err == nil {
		t.Error("Extract with k=-1 should fail")
	}
}

func TestExtractAllBlack(t *testing.T) {
	samples := make([]Color, 500)

	entries, err := Analyze(samples, 5)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Color != (Color{0, 0, 0}) {
			t.Errorf("entry %d: expected black, got %s", i, e.Color.Hex())
		}
		if e.Saturation != 0 || e.Brightness != 0 || e.Vibrancy != 0 {
			t.Errorf("entry %d: expected zero metrics, got s=%f b=%f v=%f",
				i, e.Saturation, e.Brightness, e.Vibrancy)
		}
	}
}

func TestExtractRedBlueSplit(t *testing.T) {
	// 90% pure red, 10% pure blue
	samples := makeSamples(
		[]Color{{255, 0, 0}, {0, 0, 255}},
		[]int{900, 100},
	)

	entries, err := Analyze(samples, 2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Color != (Color{255, 0, 0}) {
		t.Errorf("expected red first (most populated), got %s", entries[0].Color.Hex())
	}
	if entries[1].Color != (Color{0, 0, 255}) {
		t.Errorf("expected blue second, got %s", entries[1].Color.Hex())
	}
	if entries[0].Population < entries[1].Population {
		t.Errorf("populations not in descending order: %d then %d",
			entries[0].Population, entries[1].Population)
	}

	for i, e := range entries {
		if math.Abs(e.Saturation-1.0) > 0.01 {
			t.Errorf("entry %d: saturation %f, want ~1.0", i, e.Saturation)
		}
		if math.Abs(e.Brightness-1.0) > 0.01 {
			t.Errorf("entry %d: brightness %f, want ~1.0", i, e.Brightness)
		}
		if math.Abs(e.Vibrancy-1.0) > 0.01 {
			t.Errorf("entry %d: vibrancy %f, want ~1.0", i, e.Vibrancy)
		}
	}
}

func TestExtractFewerDistinctThanK(t *testing.T) {
	samples := makeSamples(
		[]Color{{255, 0, 0}, {0, 0, 255}},
		[]int{10, 5},
	)

	entries, err := Extract(samples, 5)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	if entries[0].Color != (Color{255, 0, 0}) {
		t.Errorf("expected red first, got %s", entries[0].Color.Hex())
	}
	// padded entries repeat existing centroids with zero population
	for _, e := range entries[2:] {
		if e.Population != 0 {
			t.Errorf("padded entry has population %d, want 0", e.Population)
		}
	}
}

func TestExtractOrderedByPopulation(t *testing.T) {
	samples := makeSamples(
		[]Color{{250, 5, 5}, {5, 250, 5}, {5, 5, 250}, {250, 250, 5}},
		[]int{400, 300, 200, 100},
	)

	entries, err := Extract(samples, 4)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Population > entries[i-1].Population {
			t.Errorf("entries not sorted by population: %d after %d",
				entries[i].Population, entries[i-1].Population)
		}
	}
	if entries[0].Population != 400 {
		t.Errorf("dominant cluster population %d, want 400", entries[0].Population)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{Color{255, 0, 0}, "FF0000"},
		{Color{0, 0, 0}, "000000"},
		{Color{255, 255, 255}, "FFFFFF"},
		{Color{1, 10, 100}, "010A64"},
	}
	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("Hex(%v) = %q, want %q", tt.color, got, tt.want)
		}
	}
}
