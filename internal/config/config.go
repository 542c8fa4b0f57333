// Package config handles ribbonmesh configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/ribbon/internal/cartoon"
)

// Build modes.
const (
	ModeBaseline   = "baseline"
	ModeParallel   = "parallel"
	ModeNucleotide = "nucleotide"
)

// Config holds all ribbonmesh settings.
type Config struct {
	Style           StyleConfig   `yaml:"style"`
	NucleotideStyle StyleConfig   `yaml:"nucleotide_style"`
	Build           BuildConfig   `yaml:"build"`
	Logging         LoggingConfig `yaml:"logging"`
}

// StyleConfig mirrors cartoon.Style with colors as hex strings.
type StyleConfig struct {
	SplineSteps         int           `yaml:"spline_steps"`
	ProfilePoints       int           `yaml:"profile_points"`
	Fast                bool          `yaml:"fast"`
	FastSplineSteps     int           `yaml:"fast_spline_steps"`
	FastProfilePoints   int           `yaml:"fast_profile_points"`
	RibbonWidth         float32       `yaml:"ribbon_width"`
	RibbonHeight        float32       `yaml:"ribbon_height"`
	RibbonOffset        float32       `yaml:"ribbon_offset"`
	ArrowWidth          float32       `yaml:"arrow_width"`
	ArrowHeadWidth      float32       `yaml:"arrow_head_width"`
	ArrowHeight         float32       `yaml:"arrow_height"`
	TubeSize            float32       `yaml:"tube_size"`
	CheckDistance       bool          `yaml:"check_distance"`
	MaxBackboneDistance float32       `yaml:"max_backbone_distance"`
	MirrorX             bool          `yaml:"mirror_x"`
	TubeOnly            bool          `yaml:"tube_only"`
	TubeByBFactor       bool          `yaml:"tube_by_bfactor"`
	DrawBases           bool          `yaml:"draw_bases"`
	BaseRadius          float32       `yaml:"base_radius"`
	Palette             PaletteConfig `yaml:"palette"`
}

// PaletteConfig holds "#rrggbb" colors.
type PaletteConfig struct {
	Helix           string `yaml:"helix"`
	Helix310        string `yaml:"helix_310"`
	HelixPi         string `yaml:"helix_pi"`
	HelixOther      string `yaml:"helix_other"`
	Strand          string `yaml:"strand"`
	Coil            string `yaml:"coil"`
	NucleicBackbone string `yaml:"nucleic_backbone"`
	BaseA           string `yaml:"base_a"`
	BaseC           string `yaml:"base_c"`
	BaseG           string `yaml:"base_g"`
	BaseT           string `yaml:"base_t"`
}

// BuildConfig holds the settings of one mesh build.
type BuildConfig struct {
	Mode    string        `yaml:"mode"`
	Input   string        `yaml:"input"`
	Output  string        `yaml:"output"`
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Style:           FromStyle(cartoon.DefaultStyle()),
		NucleotideStyle: FromStyle(cartoon.NucleotideStyle()),
		Build: BuildConfig{
			Mode:    ModeBaseline,
			Output:  "ribbon.obj",
			Workers: 0,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// FromStyle converts a cartoon style into its configuration form.
func FromStyle(s cartoon.Style) StyleConfig {
	p := s.Palette
	return StyleConfig{
		SplineSteps:         s.SplineSteps,
		ProfilePoints:       s.ProfilePoints,
		Fast:                s.Fast,
		FastSplineSteps:     s.FastSplineSteps,
		FastProfilePoints:   s.FastProfilePoints,
		RibbonWidth:         s.RibbonWidth,
		RibbonHeight:        s.RibbonHeight,
		RibbonOffset:        s.RibbonOffset,
		ArrowWidth:          s.ArrowWidth,
		ArrowHeadWidth:      s.ArrowHeadWidth,
		ArrowHeight:         s.ArrowHeight,
		TubeSize:            s.TubeSize,
		CheckDistance:       s.CheckDistance,
		MaxBackboneDistance: s.MaxBackboneDistance,
		MirrorX:             s.MirrorX,
		TubeOnly:            s.TubeOnly,
		TubeByBFactor:       s.TubeByBFactor,
		DrawBases:           s.DrawBases,
		BaseRadius:          s.BaseRadius,
		Palette: PaletteConfig{
			Helix:           p.Helix.Hex(),
			Helix310:        p.Helix310.Hex(),
			HelixPi:         p.HelixPi.Hex(),
			HelixOther:      p.HelixOther.Hex(),
			Strand:          p.Strand.Hex(),
			Coil:            p.Coil.Hex(),
			NucleicBackbone: p.NucleicBackbone.Hex(),
			BaseA:           p.BaseA.Hex(),
			BaseC:           p.BaseC.Hex(),
			BaseG:           p.BaseG.Hex(),
			BaseT:           p.BaseT.Hex(),
		},
	}
}

// ToStyle converts the configuration into a validated cartoon style.
func (c StyleConfig) ToStyle() (cartoon.Style, error) {
	palette, err := c.Palette.toPalette()
	if err != nil {
		return cartoon.Style{}, err
	}
	s := cartoon.Style{
		SplineSteps:         c.SplineSteps,
		ProfilePoints:       c.ProfilePoints,
		Fast:                c.Fast,
		FastSplineSteps:     c.FastSplineSteps,
		FastProfilePoints:   c.FastProfilePoints,
		RibbonWidth:         c.RibbonWidth,
		RibbonHeight:        c.RibbonHeight,
		RibbonOffset:        c.RibbonOffset,
		ArrowWidth:          c.ArrowWidth,
		ArrowHeadWidth:      c.ArrowHeadWidth,
		ArrowHeight:         c.ArrowHeight,
		TubeSize:            c.TubeSize,
		CheckDistance:       c.CheckDistance,
		MaxBackboneDistance: c.MaxBackboneDistance,
		MirrorX:             c.MirrorX,
		Palette:             palette,
		TubeOnly:            c.TubeOnly,
		TubeByBFactor:       c.TubeByBFactor,
		DrawBases:           c.DrawBases,
		BaseRadius:          c.BaseRadius,
	}
	if err := s.Validate(); err != nil {
		return cartoon.Style{}, err
	}
	return s, nil
}

func (p PaletteConfig) toPalette() (cartoon.Palette, error) {
	var out cartoon.Palette
	for _, f := range []struct {
		name string
		hex  string
		dst  *cartoon.Color
	}{
		{"helix", p.Helix, &out.Helix},
		{"helix_310", p.Helix310, &out.Helix310},
		{"helix_pi", p.HelixPi, &out.HelixPi},
		{"helix_other", p.HelixOther, &out.HelixOther},
		{"strand", p.Strand, &out.Strand},
		{"coil", p.Coil, &out.Coil},
		{"nucleic_backbone", p.NucleicBackbone, &out.NucleicBackbone},
		{"base_a", p.BaseA, &out.BaseA},
		{"base_c", p.BaseC, &out.BaseC},
		{"base_g", p.BaseG, &out.BaseG},
		{"base_t", p.BaseT, &out.BaseT},
	} {
		c, err := cartoon.ParseHexColor(f.hex)
		if err != nil {
			return cartoon.Palette{}, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return out, nil
}

// CartoonStyle returns the style of the configured build mode, with the
// build's worker count applied.
func (c *Config) CartoonStyle() (cartoon.Style, error) {
	sc := c.Style
	if c.Build.Mode == ModeNucleotide {
		sc = c.NucleotideStyle
	}
	s, err := sc.ToStyle()
	if err != nil {
		return cartoon.Style{}, fmt.Errorf("%s style: %w", c.Build.Mode, err)
	}
	s.Workers = c.Build.Workers
	if err := s.Validate(); err != nil {
		return cartoon.Style{}, fmt.Errorf("%s style: %w", c.Build.Mode, err)
	}
	return s, nil
}

// Validate checks settings that no component validates on its own.
func (c *Config) Validate() error {
	switch c.Build.Mode {
	case ModeBaseline, ModeParallel, ModeNucleotide:
	default:
		return fmt.Errorf("unknown build mode %q", c.Build.Mode)
	}
	if c.Build.Timeout < 0 {
		return fmt.Errorf("negative build timeout %v", c.Build.Timeout)
	}
	return nil
}
