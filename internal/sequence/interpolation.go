package sequence

import (
	"fmt"
	"strings"
)

// Interpolation selects the key tangent/step behavior used when a key is
// added to a channel.
type Interpolation uint8

const (
	Cubic Interpolation = iota
	Linear
	Constant
)

var interpolationNames = [...]string{
	Cubic:    "cubic",
	Linear:   "linear",
	Constant: "constant",
}

func (i Interpolation) String() string {
	if int(i) < len(interpolationNames) {
		return interpolationNames[i]
	}
	return fmt.Sprintf("interpolation(%d)", uint8(i))
}

// ParseInterpolation parses the text form used in route files and flags.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cubic", "":
		return Cubic, nil
	case "linear":
		return Linear, nil
	case "constant", "step":
		return Constant, nil
	default:
		return 0, fmt.Errorf("unknown interpolation: %q", s)
	}
}

func (i Interpolation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Interpolation) UnmarshalText(text []byte) error {
	v, err := ParseInterpolation(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// ChannelIndex addresses one of the six scalar curves of a transform section.
type ChannelIndex int

const (
	PosX ChannelIndex = iota
	PosY
	PosZ
	RotRoll
	RotPitch
	RotYaw

	// NumChannels is the number of channels on a transform section.
	NumChannels = 6
)

var channelNames = [NumChannels]string{
	PosX:     "location.x",
	PosY:     "location.y",
	PosZ:     "location.z",
	RotRoll:  "rotation.roll",
	RotPitch: "rotation.pitch",
	RotYaw:   "rotation.yaw",
}

// AllChannels lists the channel indices in host order.
var AllChannels = [NumChannels]ChannelIndex{PosX, PosY, PosZ, RotRoll, RotPitch, RotYaw}

func (c ChannelIndex) String() string {
	if c >= 0 && int(c) < NumChannels {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// BlendType controls how overlapping sections combine.
type BlendType uint8

const (
	Absolute BlendType = iota
	Additive
)

func (b BlendType) String() string {
	if b == Additive {
		return "additive"
	}
	return "absolute"
}

func (b BlendType) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BlendType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "additive":
		*b = Additive
	case "absolute", "":
		*b = Absolute
	default:
		return fmt.Errorf("unknown blend type: %q", string(text))
	}
	return nil
}
