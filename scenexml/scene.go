// Provides parsing of vector graphics scenes made of
// diffusion curves, Poisson curves and gradient meshes.
// XML scene files are read into an abstract representation,
// which can then be consumed by a renderer.
// See for example usvg-scenes/sceneraster .
package scenexml

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Point is a 2D position (x, y).
type Point struct{ X, Y float64 }

// Color is an RGB color, with channels in [0, 1].
type Color struct{ R, G, B float64 }

// ColorPoint is a color located at the parameter T along a curve.
// T is normalized to [0, 1] over the sequence it belongs to.
type ColorPoint struct {
	Color
	T float64
}

// BoundaryCondition is the constraint applied on one side of a diffusion curve.
type BoundaryCondition uint8

const (
	// Dirichlet fixes the color value. It is the default.
	Dirichlet BoundaryCondition = iota
	// Neumann fixes the color gradient.
	Neumann
)

func (b BoundaryCondition) String() string {
	switch b {
	case Dirichlet:
		return "Dirichlet"
	case Neumann:
		return "Neumann"
	default:
		return "<invalid boundary condition>"
	}
}

// DiffusionCurve holds a control polyline with independent
// color gradients on its left and right sides.
type DiffusionCurve struct {
	ControlPoints []Point
	ColorsLeft    []ColorPoint
	ColorsRight   []ColorPoint
	BoundaryLeft  BoundaryCondition
	BoundaryRight BoundaryCondition
}

// PoissonCurve holds a control polyline carrying Laplacian weights.
// The weights use the ColorPoint layout: one weight per channel, at parameter T.
type PoissonCurve struct {
	ControlPoints []Point
	Weights       []ColorPoint
}

// GradientMesh is a grid of (Rows+1)*(Cols+1) control points.
// TangentsU and TangentsV are either both empty or both
// as long as Positions.
type GradientMesh struct {
	Rows, Cols int
	Positions  []Point
	Colors     []Color
	TangentsU  []Point
	TangentsV  []Point
}

// VertexCount returns the number of control points required by the mesh size.
func (m GradientMesh) VertexCount() int { return (m.Rows + 1) * (m.Cols + 1) }

// HasTangents returns true if the mesh carries U and V tangents.
func (m GradientMesh) HasTangents() bool { return len(m.TangentsU) != 0 }

// Scene holds data from parsed scene files.
type Scene struct {
	Width, Height int // image size to render

	Dialect Dialect // detected (or forced) document dialect

	DiffusionCurves []DiffusionCurve
	PoissonCurves   []PoissonCurve
	GradientMeshes  []GradientMesh
}

// ReadSceneStream reads the scene from the given io.Reader.
// The dialect is selected from the first line of the document
// (see WithDialect to bypass the detection).
// On failure, the returned error is an *Error, and no scene is returned.
func ReadSceneStream(stream io.Reader, opts ...Option) (*Scene, error) {
	cfg := newConfig(opts)
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, &Error{Kind: ResourceUnavailable, Record: -1, Index: -1, Err: err}
	}
	return readScene(data, cfg)
}

// ReadScene reads the scene from the named file.
func ReadScene(sceneFile string, opts ...Option) (*Scene, error) {
	fin, errf := os.Open(sceneFile)
	if errf != nil {
		return nil, &Error{Kind: ResourceUnavailable, Path: sceneFile, Record: -1, Index: -1, Err: errf}
	}
	defer fin.Close()
	sc, err := ReadSceneStream(fin, opts...)
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			se.Path = sceneFile
		}
		return nil, err
	}
	return sc, nil
}

func readScene(data []byte, cfg config) (*Scene, error) {
	data, err := stripBOM(data)
	if err != nil {
		return nil, &Error{Kind: MalformedDocument, Record: -1, Index: -1, Err: err}
	}
	docType := firstLine(data)

	doc, err := parseDocument(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: MalformedDocument, Record: -1, Index: -1, Err: err}
	}

	dialect := cfg.dialect
	if dialect == DialectAuto {
		dialect = detectDialect(docType)
	}
	reader, ok := sceneReaders[dialect]
	if !ok {
		return nil, &Error{Kind: UnrecognizedDialect, Tag: docType, Record: -1, Index: -1}
	}
	cfg.logger.Debug("reading scene", "dialect", dialect)

	c := &cursor{cfg: cfg}
	sc := &Scene{Dialect: dialect}
	if err = reader.readScene(doc, c, sc); err != nil {
		return nil, err
	}
	cfg.logger.Debug("scene read",
		"width", sc.Width, "height", sc.Height,
		"diffusion_curves", len(sc.DiffusionCurves),
		"poisson_curves", len(sc.PoissonCurves),
		"gradient_meshes", len(sc.GradientMeshes))
	return sc, nil
}
