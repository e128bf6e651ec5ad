// Package random provides seed generation and parsing helpers.
//
// Seeds are signed 32-bit values so they can be shared as short decimal
// strings; crypto/rand supplies fresh ones.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int32(binary.LittleEndian.Uint32(b[:])), nil
}

// ParseSeed parses base-10 seed text. Surrounding whitespace is ignored;
// anything else that is not a signed 32-bit integer is rejected.
func ParseSeed(text string) (int32, error) {
	trimmed := strings.TrimSpace(text)
	value, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil {
		return 0, apperrors.WrapWithMetadata(apperrors.CodeSeedInvalid,
			fmt.Sprintf("parse seed %q", text), map[string]string{"Text": text}, err)
	}
	return int32(value), nil
}
