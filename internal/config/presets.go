package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"dense": with(func(c *Config) {
		c.Geometry.TotalPoints = 80
		c.Geometry.Revolutions = 4
		c.Geometry.StrandRadius = 5
		c.Geometry.SubCount = 12
		c.Pulse.Stagger = 0.1
	}),
	"minimal": with(func(c *Config) {
		c.Geometry.TotalPoints = 20
		c.Geometry.SubCount = 0
		c.Pulse.Targets = "none"
		c.Bloom.Enabled = false
	}),
	"ribbon": with(func(c *Config) {
		c.Geometry.Revolutions = 1
		c.Geometry.SubCount = 40
		c.Geometry.BridgeRadius = 1.5
		c.Geometry.StartColor = "#33c3ff"
		c.Geometry.EndColor = "#b400ff"
		c.Pulse.Targets = "bridges"
		c.Pulse.Stagger = 0.01
		c.Scroll.Turns = 2
	}),
}

func with(mod func(*Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
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
