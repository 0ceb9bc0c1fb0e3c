package pipeline

import "testing"

func TestCompositePixel(t *testing.T) {
	lit := [4]float32{0.2, 0.4, 0.6, 1}

	tests := []struct {
		name string
		ui   [4]float32
		want [4]float32
	}{
		{
			name: "transparent ui lets lit through",
			ui:   [4]float32{0.9, 0.9, 0.9, 0},
			want: lit,
		},
		{
			name: "opaque ui replaces lit",
			ui:   [4]float32{1, 0, 0, 1},
			want: [4]float32{1, 0, 0, 1},
		},
		{
			name: "fractional alpha still replaces, never blends",
			ui:   [4]float32{1, 0, 0, 0.5},
			want: [4]float32{1, 0, 0, 0.5},
		},
		{
			name: "near-zero alpha counts as ui",
			ui:   [4]float32{0, 1, 0, 0.004},
			want: [4]float32{0, 1, 0, 0.004},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompositePixel(lit, tt.ui)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
