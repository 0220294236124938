package config

// ConfigBuilderOption is a functional option applied by New.
type ConfigBuilderOption func(*Config)

// WithObliqueClip enables or disables oblique near-plane clipping.
func WithObliqueClip(enabled bool) ConfigBuilderOption {
	return func(c *Config) {
		c.EnableObliqueClip = enabled
	}
}

// WithOffAxisProjection enables or disables off-axis culling matrices.
func WithOffAxisProjection(enabled bool) ConfigBuilderOption {
	return func(c *Config) {
		c.EnableOffAxisProjection = enabled
	}
}

// WithClippingOffset sets the default portal clipping offset.
func WithClippingOffset(offset float64) ConfigBuilderOption {
	return func(c *Config) {
		c.ClippingOffset = offset
	}
}

// WithRenderTargetDepthBits sets the depth precision of portal targets.
func WithRenderTargetDepthBits(bits int) ConfigBuilderOption {
	return func(c *Config) {
		c.RenderTargetDepthBits = bits
	}
}

// WithMaxRenderTargets caps live portal targets. Zero means unlimited.
func WithMaxRenderTargets(n int) ConfigBuilderOption {
	return func(c *Config) {
		c.MaxRenderTargets = n
	}
}
