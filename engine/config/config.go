package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-portal/common"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config controls how portal cameras build their matrices and targets.
type Config struct {
	// EnableObliqueClip replaces the near plane with the exit portal plane.
	EnableObliqueClip bool `json:"enableObliqueClip"`
	// EnableOffAxisProjection culls with a frustum fitted to the exit aperture.
	EnableOffAxisProjection bool `json:"enableOffAxisProjection"`
	// ClippingOffset is the default clip bias given to new portals.
	ClippingOffset float64 `json:"clippingOffset"`
	// RenderTargetDepthBits is the depth buffer precision of portal targets: 0, 16, 24 or 32.
	RenderTargetDepthBits int `json:"renderTargetDepthBits"`
	// MaxRenderTargets caps live portal targets. Zero means unlimited.
	MaxRenderTargets int `json:"maxRenderTargets"`
}

// Default returns oblique clipping on, off-axis culling off, a 0.05 clipping offset, 24 bit depth
// and no target limit.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		EnableObliqueClip:       true,
		EnableOffAxisProjection: false,
		ClippingOffset:          0.05,
		RenderTargetDepthBits:   24,
		MaxRenderTargets:        0,
	}
}

// New returns Default with the given options applied.
//
// Parameters:
//   - options: functional options to configure the result
//
// Returns:
//   - Config: the configuration
func New(options ...ConfigBuilderOption) Config {
	c := Default()
	for _, option := range options {
		option(&c)
	}
	return c
}

// Validate checks every field.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig naming the first bad field, or nil
func (c Config) Validate() error {
	if !common.IsNonNegativeFinite(c.ClippingOffset) {
		return fmt.Errorf("clippingOffset %v must be finite and >= 0: %w", c.ClippingOffset, ErrInvalidConfig)
	}
	switch c.RenderTargetDepthBits {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("renderTargetDepthBits %d must be 0, 16, 24 or 32: %w", c.RenderTargetDepthBits, ErrInvalidConfig)
	}
	if c.MaxRenderTargets < 0 {
		return fmt.Errorf("maxRenderTargets %d must be >= 0: %w", c.MaxRenderTargets, ErrInvalidConfig)
	}
	return nil
}

// Parse decodes a JSON document over Default, so omitted fields keep their defaults. Unknown
// fields are rejected and the result is validated.
//
// Parameters:
//   - data: the JSON document
//
// Returns:
//   - Config: the parsed configuration
//   - error: decode or validation error
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses a JSON configuration file.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the parsed configuration
//   - error: read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
