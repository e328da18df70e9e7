package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// maxInputSize limits YAML input to prevent memory exhaustion (1MB).
const maxInputSize = 1 << 20

var (
	errEmptyData     = errors.New("empty config data")
	errInputTooLarge = errors.New("config exceeds maximum size")
)

// unmarshalStrict decodes YAML into v, rejecting unknown fields so that a
// typo like "extrArgs" fails loudly instead of being ignored.
func unmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errEmptyData
	}
	if len(data) > maxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", errInputTooLarge, len(data), maxInputSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}
