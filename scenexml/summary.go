package scenexml

import "image/color"

var _ color.Color = Color{} // assert interface conformance

// RGBA implements color.Color. Channels are clamped to [0, 1].
func (c Color) RGBA() (r, g, b, a uint32) {
	return channel16(c.R), channel16(c.G), channel16(c.B), 0xffff
}

func channel16(v float64) uint32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xffff
	default:
		return uint32(v*0xffff + 0.5)
	}
}

// Summary gives the size of a scene.
type Summary struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Dialect         string `yaml:"dialect"`
	DiffusionCurves int    `yaml:"diffusion_curves"`
	PoissonCurves   int    `yaml:"poisson_curves"`
	GradientMeshes  int    `yaml:"gradient_meshes"`
	ControlPoints   int    `yaml:"control_points"` // of both kinds of curves
	ColorPoints     int    `yaml:"color_points"`   // colors and weights along curves
	MeshVertices    int    `yaml:"mesh_vertices"`
}

// Summary counts the primitives of the scene.
func (sc *Scene) Summary() Summary {
	s := Summary{
		Width:           sc.Width,
		Height:          sc.Height,
		Dialect:         sc.Dialect.String(),
		DiffusionCurves: len(sc.DiffusionCurves),
		PoissonCurves:   len(sc.PoissonCurves),
		GradientMeshes:  len(sc.GradientMeshes),
	}
	for _, curve := range sc.DiffusionCurves {
		s.ControlPoints += len(curve.ControlPoints)
		s.ColorPoints += len(curve.ColorsLeft) + len(curve.ColorsRight)
	}
	for _, curve := range sc.PoissonCurves {
		s.ControlPoints += len(curve.ControlPoints)
		s.ColorPoints += len(curve.Weights)
	}
	for _, mesh := range sc.GradientMeshes {
		s.MeshVertices += len(mesh.Positions)
	}
	return s
}
