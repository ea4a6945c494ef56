package topics

import "testing"

func TestDiceSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantMin float64
		wantMax float64
	}{
		{"identical", "climate change", "climate change", 1.0, 1.0},
		{"case insensitive", "Climate Change", "climate change", 1.0, 1.0},
		{"whitespace ignored", "climatechange", "climate change", 1.0, 1.0},
		{"near match", "climate change", "climate changes", 0.8, 1.0},
		{"unrelated", "climate", "xylophone", 0.0, 0.2},
		{"both empty", "", "", 0.0, 0.0},
		{"one empty", "climate", "", 0.0, 0.0},
		{"single char", "a", "b", 0.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiceSimilarity(tt.a, tt.b)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("DiceSimilarity(%q, %q) = %v, want [%v, %v]", tt.a, tt.b, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestDiceSimilarity_symmetric(t *testing.T) {
	a, b := "renewable energy policy", "energy policy reform"
	if DiceSimilarity(a, b) != DiceSimilarity(b, a) {
		t.Error("similarity should be symmetric")
	}
}

func TestDiceSimilarity_bounds(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"}, {"universal basic income", "income"}, {"aa", "aaaa"},
	}
	for _, p := range pairs {
		got := DiceSimilarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("DiceSimilarity(%q, %q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}
