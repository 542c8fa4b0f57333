package cartoon

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidStyle is wrapped by every Style validation failure.
var ErrInvalidStyle = errors.New("invalid cartoon style")

// Style is the immutable parameter set of one build.
type Style struct {
	// SplineSteps is the number of spline intervals per window.
	SplineSteps int
	// ProfilePoints is the number of points on a cross-section; a multiple of 4.
	ProfilePoints int

	// Fast switches to FastSplineSteps and FastProfilePoints, e.g. while
	// playing back a trajectory.
	Fast              bool
	FastSplineSteps   int
	FastProfilePoints int

	RibbonWidth    float32
	RibbonHeight   float32
	RibbonOffset   float32
	ArrowWidth     float32
	ArrowHeadWidth float32
	ArrowHeight    float32
	TubeSize       float32

	// CheckDistance drops windows whose consecutive primary atoms are at
	// least MaxBackboneDistance apart.
	CheckDistance       bool
	MaxBackboneDistance float32

	// MirrorX applies the handedness conversion to every input position.
	MirrorX bool

	Palette Palette

	// TubeOnly renders every residue as coil (parallel builder).
	TubeOnly bool
	// TubeByBFactor scales the tube radius by the normalized CA B-factor
	// (parallel builder, with TubeOnly).
	TubeByBFactor bool
	// Workers bounds the goroutines of each parallel pass; 0 means NumCPU.
	Workers int

	// DrawBases adds one capsule per nucleotide (nucleotide builder).
	DrawBases  bool
	BaseRadius float32
}

// DefaultStyle returns the protein cartoon defaults.
func DefaultStyle() Style {
	return Style{
		SplineSteps:         16,
		ProfilePoints:       8,
		FastSplineSteps:     4,
		FastProfilePoints:   4,
		RibbonWidth:         2.0,
		RibbonHeight:        0.125,
		RibbonOffset:        1.5,
		ArrowWidth:          2.0,
		ArrowHeadWidth:      3.0,
		ArrowHeight:         0.5,
		TubeSize:            0.25,
		CheckDistance:       true,
		MaxBackboneDistance: 5.0,
		MirrorX:             true,
		Palette:             DefaultPalette(),
		DrawBases:           true,
		BaseRadius:          0.35,
	}
}

// TrajectoryStyle is DefaultStyle at low detail.
func TrajectoryStyle() Style {
	s := DefaultStyle()
	s.Fast = true
	return s
}

// NucleotideStyle returns the defaults of the nucleic acid ribbon.
func NucleotideStyle() Style {
	s := DefaultStyle()
	s.SplineSteps = 4
	s.ProfilePoints = 4
	s.RibbonOffset = 0.5
	s.CheckDistance = false
	return s
}

// detail returns the spline steps and profile points in effect.
func (s Style) detail() (steps, points int) {
	if s.Fast {
		return s.FastSplineSteps, s.FastProfilePoints
	}
	return s.SplineSteps, s.ProfilePoints
}

func (s Style) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

// Validate reports parameters no build can work with.
func (s Style) Validate() error {
	check := func(name string, steps, points int) error {
		if steps < 1 {
			return fmt.Errorf("%w: %s spline steps must be positive, got %d", ErrInvalidStyle, name, steps)
		}
		if points < 4 || points%4 != 0 {
			return fmt.Errorf("%w: %s profile points must be a positive multiple of 4, got %d", ErrInvalidStyle, name, points)
		}
		return nil
	}
	if err := check("detailed", s.SplineSteps, s.ProfilePoints); err != nil {
		return err
	}
	if err := check("fast", s.FastSplineSteps, s.FastProfilePoints); err != nil {
		return err
	}
	for name, v := range map[string]float32{
		"ribbon width":     s.RibbonWidth,
		"ribbon height":    s.RibbonHeight,
		"arrow width":      s.ArrowWidth,
		"arrow head width": s.ArrowHeadWidth,
		"arrow height":     s.ArrowHeight,
		"tube size":        s.TubeSize,
		"base radius":      s.BaseRadius,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidStyle, name, v)
		}
	}
	if s.CheckDistance && s.MaxBackboneDistance <= 0 {
		return fmt.Errorf("%w: backbone distance limit must be positive, got %g", ErrInvalidStyle, s.MaxBackboneDistance)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidStyle, s.Workers)
	}
	return nil
}
