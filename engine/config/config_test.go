package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if !c.EnableObliqueClip || c.EnableOffAxisProjection || c.ClippingOffset != 0.05 ||
		c.RenderTargetDepthBits != 24 || c.MaxRenderTargets != 0 {
		t.Errorf("Default = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default does not validate: %v", err)
	}
}

func TestNew_AppliesOptions(t *testing.T) {
	c := New(WithObliqueClip(false), WithOffAxisProjection(true), WithClippingOffset(0.2),
		WithRenderTargetDepthBits(16), WithMaxRenderTargets(4))
	want := Config{false, true, 0.2, 16, 4}
	if c != want {
		t.Errorf("New = %+v, want %+v", c, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", Default(), true},
		{"zero offset", New(WithClippingOffset(0)), true},
		{"no depth", New(WithRenderTargetDepthBits(0)), true},
		{"negative offset", New(WithClippingOffset(-0.1)), false},
		{"nan offset", New(WithClippingOffset(math.NaN())), false},
		{"inf offset", New(WithClippingOffset(math.Inf(1))), false},
		{"odd depth", New(WithRenderTargetDepthBits(8)), false},
		{"negative targets", New(WithMaxRenderTargets(-1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`{"enableOffAxisProjection": true, "clippingOffset": 0.1}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !c.EnableOffAxisProjection || c.ClippingOffset != 0.1 || !c.EnableObliqueClip || c.RenderTargetDepthBits != 24 {
		t.Errorf("Parse = %+v", c)
	}

	if _, err := Parse([]byte(`{"clippingOfset": 0.1}`)); err == nil {
		t.Error("unknown field accepted")
	}
	if _, err := Parse([]byte(`{"clippingOffset": -1}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative offset = %v, want ErrInvalidConfig", err)
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Error("truncated document accepted")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.json")
	if err := os.WriteFile(path, []byte(`{"maxRenderTargets": 8}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.MaxRenderTargets != 8 {
		t.Errorf("MaxRenderTargets = %d, want 8", c.MaxRenderTargets)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file = %v, want os.ErrNotExist", err)
	}
}
