package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/disp4b/internal/analytic"
	"github.com/san-kum/disp4b/internal/coefficients"
	"github.com/san-kum/disp4b/internal/dispersion"
	"github.com/san-kum/disp4b/internal/geom"
	"github.com/san-kum/disp4b/internal/shortrange"
)

const (
	DefaultRCutoff    = 15.0
	DefaultExponCoeff = 1.0
	DefaultScanMin    = 2.5
	DefaultScanMax    = 6.0
	DefaultSamples    = 64
	DefaultWorkers    = 4
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name        string            `yaml:"name,omitempty"`
	Coefficient CoefficientConfig `yaml:"coefficient"`
	Dispersion  DispersionConfig  `yaml:"dispersion"`
	Attenuation AttenuationConfig `yaml:"attenuation"`
	ShortRange  ShortRangeConfig  `yaml:"short_range"`
	Scan        ScanConfig        `yaml:"scan"`
}

type CoefficientConfig struct {
	Provider string  `yaml:"provider"`
	Ratio    float64 `yaml:"ratio,omitempty"`
	Value    float64 `yaml:"value,omitempty"`
}

type DispersionConfig struct {
	Kind     string `yaml:"kind"`
	Triplets string `yaml:"triplets"`
}

type AttenuationConfig struct {
	Disabled   bool    `yaml:"disabled,omitempty"`
	RCutoff    float64 `yaml:"r_cutoff"`
	ExponCoeff float64 `yaml:"expon_coeff"`
	Distance   string  `yaml:"distance"`
}

type ShortRangeConfig struct {
	Form     string  `yaml:"form"`
	Coeff    float64 `yaml:"coeff,omitempty"`
	Expon    float64 `yaml:"expon,omitempty"`
	ExponLin float64 `yaml:"expon_lin,omitempty"`
	ExponSq  float64 `yaml:"expon_sq,omitempty"`
	Distance string  `yaml:"distance,omitempty"`
}

type ScanConfig struct {
	Shape   string  `yaml:"shape"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Samples int     `yaml:"samples"`
	Workers int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Coefficient: CoefficientConfig{Provider: "midzuno-kihara"},
		Dispersion:  DispersionConfig{Kind: "bade", Triplets: "chained"},
		Attenuation: AttenuationConfig{
			RCutoff:    DefaultRCutoff,
			ExponCoeff: DefaultExponCoeff,
			Distance:   "side-lengths",
		},
		ShortRange: ShortRangeConfig{Form: "none"},
		Scan: ScanConfig{
			Shape:   "tetrahedron",
			Min:     DefaultScanMin,
			Max:     DefaultScanMax,
			Samples: DefaultSamples,
			Workers: DefaultWorkers,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Validate checks names and scan bounds. Numeric potential parameters are
// checked by the constructors in Build.
func (c *Config) Validate() error {
	switch c.Dispersion.Kind {
	case "bade", "quadruplet":
	default:
		return errors.Wrapf(ErrInvalidConfig, "dispersion kind %q", c.Dispersion.Kind)
	}
	if _, err := dispersion.ParseTripletScheme(c.Dispersion.Triplets); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	switch c.ShortRange.Form {
	case "", "none", "exponential", "exponential2":
	default:
		return errors.Wrapf(ErrInvalidConfig, "short range form %q", c.ShortRange.Form)
	}
	if _, err := geom.ShapeByName(c.Scan.Shape); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if !(c.Scan.Min > 0) || !(c.Scan.Max > c.Scan.Min) {
		return errors.Wrapf(ErrInvalidConfig, "scan range [%g, %g]", c.Scan.Min, c.Scan.Max)
	}
	if c.Scan.Samples < 2 {
		return errors.Wrapf(ErrInvalidConfig, "scan samples %d", c.Scan.Samples)
	}
	if c.Scan.Workers < 1 {
		return errors.Wrapf(ErrInvalidConfig, "scan workers %d", c.Scan.Workers)
	}
	return nil
}

// Assembly is the set of objects a configuration describes.
// Attenuation is nil when the switch is disabled.
type Assembly struct {
	Provider    coefficients.Provider
	Dispersion  dispersion.Model
	Attenuation *shortrange.SilveraGoldman
	Potential   *analytic.Potential
}

// Build validates the configuration and constructs the potential.
func (c *Config) Build() (*Assembly, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	provider, err := coefficients.Lookup(c.Coefficient.Provider, c.Coefficient.Ratio, c.Coefficient.Value)
	if err != nil {
		return nil, errors.Wrap(err, "coefficient")
	}

	disp, err := c.buildDispersion(provider.C12())
	if err != nil {
		return nil, errors.Wrap(err, "dispersion")
	}

	sg, att, err := c.buildAttenuation()
	if err != nil {
		return nil, errors.Wrap(err, "attenuation")
	}

	short, err := c.buildShortRange()
	if err != nil {
		return nil, errors.Wrap(err, "short range")
	}

	return &Assembly{
		Provider:    provider,
		Dispersion:  disp,
		Attenuation: sg,
		Potential:   analytic.New(disp, short, att),
	}, nil
}

func (c *Config) buildDispersion(c12 float64) (dispersion.Model, error) {
	if c.Dispersion.Kind == "quadruplet" {
		return dispersion.NewQuadrupletPotential(c12)
	}
	scheme, err := dispersion.ParseTripletScheme(c.Dispersion.Triplets)
	if err != nil {
		return nil, err
	}
	return dispersion.NewPotential(c12, dispersion.WithTripletScheme(scheme))
}

func (c *Config) buildAttenuation() (*shortrange.SilveraGoldman, analytic.FourPointFunc, error) {
	if c.Attenuation.Disabled {
		return nil, analytic.Unattenuated, nil
	}
	att, err := shortrange.NewSilveraGoldmanAttenuation(c.Attenuation.RCutoff, c.Attenuation.ExponCoeff)
	if err != nil {
		return nil, nil, err
	}
	reduce, err := shortrange.ReducerByName(c.Attenuation.Distance)
	if err != nil {
		return nil, nil, err
	}
	return att, shortrange.DistanceParameterFunction{Function: att, Reduce: reduce}.Eval, nil
}

func (c *Config) buildShortRange() (analytic.FourPointFunc, error) {
	var fn shortrange.Scalar
	switch c.ShortRange.Form {
	case "", "none":
		return analytic.Zero, nil
	case "exponential":
		ed, err := shortrange.NewExponentialDecay(c.ShortRange.Coeff, c.ShortRange.Expon)
		if err != nil {
			return nil, err
		}
		fn = ed
	case "exponential2":
		ed, err := shortrange.NewExponentialDecayOrder2(c.ShortRange.Coeff, c.ShortRange.ExponLin, c.ShortRange.ExponSq)
		if err != nil {
			return nil, err
		}
		fn = ed
	}

	reduce, err := shortrange.ReducerByName(c.ShortRange.Distance)
	if err != nil {
		return nil, err
	}
	return shortrange.DistanceParameterFunction{Function: fn, Reduce: reduce}.Eval, nil
}
