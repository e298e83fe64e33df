package config

import "sort"

var Presets = map[string]*Config{
	"parahydrogen": {
		Name:        "parahydrogen",
		Coefficient: CoefficientConfig{Provider: "midzuno-kihara"},
		Dispersion:  DispersionConfig{Kind: "bade", Triplets: "chained"},
		Attenuation: AttenuationConfig{RCutoff: DefaultRCutoff, ExponCoeff: DefaultExponCoeff, Distance: "side-lengths"},
		ShortRange:  ShortRangeConfig{Form: "none"},
		Scan:        ScanConfig{Shape: "tetrahedron", Min: 2.5, Max: 6.0, Samples: 64, Workers: DefaultWorkers},
	},
	"parahydrogen-symmetric": {
		Name:        "parahydrogen-symmetric",
		Coefficient: CoefficientConfig{Provider: "midzuno-kihara"},
		Dispersion:  DispersionConfig{Kind: "bade", Triplets: "symmetric"},
		Attenuation: AttenuationConfig{RCutoff: DefaultRCutoff, ExponCoeff: DefaultExponCoeff, Distance: "side-lengths"},
		ShortRange:  ShortRangeConfig{Form: "none"},
		Scan:        ScanConfig{Shape: "square", Min: 2.5, Max: 6.0, Samples: 64, Workers: DefaultWorkers},
	},
	"quadruplet-only": {
		Name:        "quadruplet-only",
		Coefficient: CoefficientConfig{Provider: "midzuno-kihara"},
		Dispersion:  DispersionConfig{Kind: "quadruplet", Triplets: "chained"},
		Attenuation: AttenuationConfig{RCutoff: 4.0, ExponCoeff: DefaultExponCoeff, Distance: "centroid"},
		ShortRange:  ShortRangeConfig{Form: "none"},
		Scan:        ScanConfig{Shape: "tetrahedron", Min: 2.5, Max: 6.0, Samples: 64, Workers: DefaultWorkers},
	},
	"unit": {
		Name:        "unit",
		Coefficient: CoefficientConfig{Provider: "fixed", Value: 1.0},
		Dispersion:  DispersionConfig{Kind: "bade", Triplets: "chained"},
		Attenuation: AttenuationConfig{Disabled: true, RCutoff: 1.0, ExponCoeff: 1.0, Distance: "side-lengths"},
		ShortRange:  ShortRangeConfig{Form: "none"},
		Scan:        ScanConfig{Shape: "tetrahedron", Min: 1.0, Max: 5.0, Samples: 128, Workers: DefaultWorkers},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
