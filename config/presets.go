package config

import "sort"

var Presets = map[string]*Config{
	"coarse": {
		Horizon: 10, Step: 0.1, Mode: "constraint",
	},
	"fine": {
		Horizon: 100, Step: 0.01, Mode: "constraint",
	},
	"adaptive": {
		Horizon: 50, StepPath: "dt", Mode: "constraint",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
