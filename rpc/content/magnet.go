package content

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// MagnetString returns base58 representation of the magnet.
func MagnetString(magnet []byte) string {
	return base58.Encode(magnet)
}

// ParseMagnet decodes magnet from its base58 representation.
func ParseMagnet(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("empty magnet")
	}

	magnet, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid magnet %q: %w", s, err)
	}

	return magnet, nil
}
