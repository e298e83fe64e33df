package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/disp4b/internal/coefficients"
	"github.com/san-kum/disp4b/internal/dispersion"
	"github.com/san-kum/disp4b/internal/geom"
	"github.com/san-kum/disp4b/internal/shortrange"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "midzuno-kihara", cfg.Coefficient.Provider)
	assert.Equal(t, "bade", cfg.Dispersion.Kind)
	assert.Greater(t, cfg.Attenuation.RCutoff, 0.0)
	assert.Greater(t, cfg.Attenuation.ExponCoeff, 0.0)
	require.NoError(t, cfg.Validate())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disp4b.yaml")

	cfg := DefaultConfig()
	cfg.Dispersion.Triplets = "symmetric"
	cfg.Scan.Samples = 12
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("coefficient:\n  provider: fixed\n  value: 2.5\nscan:\n  shape: square\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fixed", cfg.Coefficient.Provider)
	assert.Equal(t, 2.5, cfg.Coefficient.Value)
	assert.Equal(t, "square", cfg.Scan.Shape)
	assert.Equal(t, DefaultRCutoff, cfg.Attenuation.RCutoff)
	assert.Equal(t, "bade", cfg.Dispersion.Kind)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"dispersion kind", func(c *Config) { c.Dispersion.Kind = "axilrod-teller" }},
		{"triplets", func(c *Config) { c.Dispersion.Triplets = "all" }},
		{"short range form", func(c *Config) { c.ShortRange.Form = "morse" }},
		{"shape", func(c *Config) { c.Scan.Shape = "cube" }},
		{"scan min", func(c *Config) { c.Scan.Min = 0 }},
		{"scan order", func(c *Config) { c.Scan.Max = c.Scan.Min }},
		{"samples", func(c *Config) { c.Scan.Samples = 1 }},
		{"workers", func(c *Config) { c.Scan.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBuild_Default(t *testing.T) {
	asm, err := DefaultConfig().Build()
	require.NoError(t, err)

	assert.Equal(t, "midzuno-kihara", asm.Provider.Name())
	assert.InDelta(t, coefficients.NewMidzunoKihara().C12(), asm.Dispersion.Coefficient(), 1e-9)

	require.NotNil(t, asm.Attenuation)
	assert.Equal(t, DefaultRCutoff, asm.Attenuation.Cutoff())
	assert.Equal(t, DefaultExponCoeff, asm.Attenuation.ExponentCoeff())

	pot, ok := asm.Dispersion.(*dispersion.Potential)
	require.True(t, ok, "expected full potential, got %T", asm.Dispersion)
	assert.Equal(t, dispersion.ChainedTriplets, pot.Scheme())

	// well beyond the cutoff the composite equals the bare dispersion
	q := geom.Tetrahedron(4.0)
	assert.InDelta(t, pot.EnergyOf(q), asm.Potential.Energy(q), 1e-12)
}

func TestBuild_Presets(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			require.NotNil(t, cfg)
			asm, err := cfg.Build()
			require.NoError(t, err)

			e := asm.Potential.Energy(geom.Tetrahedron(3.0))
			assert.False(t, math.IsNaN(e) || math.IsInf(e, 0), "energy %v", e)
		})
	}
}

func TestBuild_QuadrupletOnly(t *testing.T) {
	asm, err := GetPreset("quadruplet-only").Build()
	require.NoError(t, err)
	_, ok := asm.Dispersion.(*dispersion.QuadrupletPotential)
	assert.True(t, ok, "expected quadruplet potential, got %T", asm.Dispersion)
}

func TestBuild_Unit(t *testing.T) {
	asm, err := GetPreset("unit").Build()
	require.NoError(t, err)

	assert.Nil(t, asm.Attenuation)

	// unattenuated with no short range: reproduces the bare reference value
	assert.InDelta(t, -14.375, asm.Potential.Energy(geom.Tetrahedron(1.0)), 1e-12)
}

func TestBuild_ShortRange(t *testing.T) {
	cfg := GetPreset("unit")
	cfg.ShortRange = ShortRangeConfig{Form: "exponential", Coeff: 10.0, Expon: 1.0, Distance: "side-lengths"}
	asm, err := cfg.Build()
	require.NoError(t, err)

	q := geom.Tetrahedron(1.0)
	b := asm.Potential.Evaluate(q)
	assert.InDelta(t, 10.0*math.Exp(-shortrange.SumOfSideLengths(q)), b.ShortRange, 1e-12)
	assert.InDelta(t, b.ShortRange+b.Dispersion, b.Total, 1e-12)

	cfg.ShortRange = ShortRangeConfig{Form: "exponential2", Coeff: 1.0, ExponLin: -1.0, ExponSq: 0.5}
	_, err = cfg.Build()
	require.NoError(t, err)
}

func TestBuild_ConstructorErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"fixed coefficient", func(c *Config) { c.Coefficient = CoefficientConfig{Provider: "fixed", Value: -1} }, coefficients.ErrInvalidValue},
		{"unknown provider", func(c *Config) { c.Coefficient.Provider = "casimir-polder" }, coefficients.ErrUnknownProvider},
		{"ratio", func(c *Config) { c.Coefficient = CoefficientConfig{Provider: "ab-initio-ratio"} }, coefficients.ErrInvalidRatio},
		{"cutoff", func(c *Config) { c.Attenuation.RCutoff = 0 }, shortrange.ErrInvalidAttenuation},
		{"exponent", func(c *Config) { c.Attenuation.ExponCoeff = -2 }, shortrange.ErrInvalidAttenuation},
		{"distance", func(c *Config) { c.Attenuation.Distance = "volume" }, shortrange.ErrUnknownReducer},
		{"decay exponent", func(c *Config) { c.ShortRange = ShortRangeConfig{Form: "exponential", Coeff: 1} }, shortrange.ErrInvalidExponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			_, err := cfg.Build()
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("parahydrogen")
	require.NotNil(t, cfg)
	assert.Equal(t, "parahydrogen", cfg.Name)

	cfg.Scan.Samples = 3
	assert.NotEqual(t, 3, Presets["parahydrogen"].Scan.Samples, "GetPreset must return a copy")

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	assert.Len(t, presets, len(Presets))
	assert.IsIncreasing(t, presets)
}
