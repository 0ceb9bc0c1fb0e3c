package pipeline

import "testing"

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in      string
		want    Channel
		wantErr bool
	}{
		{"albedo", ChannelAlbedo, false},
		{"diffuse", ChannelAlbedo, false},
		{"normal", ChannelNormal, false},
		{"emission", ChannelEmission, false},
		{"position", ChannelPosition, false},
		{"depth", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseChannel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseChannel(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseChannel(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChannel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestChannelNextCycles(t *testing.T) {
	c := ChannelAlbedo
	seen := map[Channel]bool{}
	for i := 0; i < 4; i++ {
		seen[c] = true
		c = c.Next()
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct channels in one cycle, got %d", len(seen))
	}
	if c != ChannelAlbedo {
		t.Errorf("expected cycle back to albedo, got %v", c)
	}
}

func TestChannelString(t *testing.T) {
	if got := ChannelNormal.String(); got != "normal" {
		t.Errorf("expected \"normal\", got %q", got)
	}
	if got := Channel(42).String(); got != "channel(42)" {
		t.Errorf("expected fallback string, got %q", got)
	}
}
