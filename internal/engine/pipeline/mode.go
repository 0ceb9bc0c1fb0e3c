package pipeline

import "fmt"

// Mode selects what the frame runs after the geometry pass: the lighting
// pass, or a single-channel view of the G-buffer. The two are mutually
// exclusive within a frame; the orchestrator picks one before any pass
// starts.
type Mode int

const (
	// ModeLit runs the lighting pass and composites the lit result.
	ModeLit Mode = iota
	// ModeChannel shows one raw G-buffer channel instead of lighting.
	ModeChannel
)

// Channel selects which G-buffer channel the channel-view pass samples.
// The values are the uniform integers the shader switches on.
type Channel int32

const (
	ChannelAlbedo   Channel = 0
	ChannelNormal   Channel = 1
	ChannelEmission Channel = 2
	ChannelPosition Channel = 3
)

func (c Channel) String() string {
	switch c {
	case ChannelAlbedo:
		return "albedo"
	case ChannelNormal:
		return "normal"
	case ChannelEmission:
		return "emission"
	case ChannelPosition:
		return "position"
	}
	return fmt.Sprintf("channel(%d)", int32(c))
}

// ParseChannel maps a config/flag value to a Channel. "diffuse" is
// accepted as an alias for the albedo channel.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "albedo", "diffuse":
		return ChannelAlbedo, nil
	case "normal":
		return ChannelNormal, nil
	case "emission":
		return ChannelEmission, nil
	case "position":
		return ChannelPosition, nil
	}
	return 0, fmt.Errorf("unknown g-buffer channel %q", s)
}

// Next cycles to the following channel, wrapping after position.
func (c Channel) Next() Channel {
	if c >= ChannelPosition {
		return ChannelAlbedo
	}
	return c + 1
}
