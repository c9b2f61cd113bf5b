package skeleton

import "fmt"

// ChannelType identifies the axis a channel drives.
type ChannelType int

const (
	TranslationX ChannelType = iota
	TranslationY
	TranslationZ
	RotationX
	RotationY
	RotationZ
)

var channelTokens = [...]string{
	TranslationX: "Xposition",
	TranslationY: "Yposition",
	TranslationZ: "Zposition",
	RotationX:    "Xrotation",
	RotationY:    "Yrotation",
	RotationZ:    "Zrotation",
}

// Valid reports whether c is one of the six known axes.
func (c ChannelType) Valid() bool {
	return c >= TranslationX && c <= RotationZ
}

// String returns the token used by the hierarchical animation format.
func (c ChannelType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ChannelType(%d)", int(c))
	}

	return channelTokens[c]
}

// IsRotation reports whether c is a rotation axis.
func (c ChannelType) IsRotation() bool {
	return c >= RotationX && c <= RotationZ
}

// ParseChannelType maps a format token such as "Zrotation" to its type.
func ParseChannelType(token string) (ChannelType, error) {
	for typ, tok := range channelTokens {
		if tok == token {
			return ChannelType(typ), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidChannel, token)
}
