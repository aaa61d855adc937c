// Implements a raster backend to preview scenes,
// by wrapping rasterx.
// Only the geometry is drawn (curve polylines, mesh grids and vertices):
// colors are not diffused.
package sceneraster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/srwiley/rasterx"
	"github.com/tobguent/usvg-scenes/scenexml"
	"golang.org/x/image/math/fixed"
)

var errEmptyImage = errors.New("scene has no image size")

// Options parametrize the preview.
type Options struct {
	Scale      float64     // pixels per scene unit; 0 means 1
	LineWidth  float64     // stroke width, in pixels
	MarkerSize float64     // side of the square drawn at mesh vertices; 0 disables the markers
	Background color.Color // nil means white

	PoissonColor color.Color // stroke of Poisson curves; nil means gray
}

// DefaultOptions are used when no options are given.
var DefaultOptions = Options{
	Scale:      1,
	LineWidth:  1.5,
	MarkerSize: 4,
}

// Renderer strokes and fills scene primitives.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	lineWidth fixed.Int26_6
}

// NewRenderer returns a renderer drawing with the given scanner.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher:    rasterx.NewDasher(width, height, scanner),
		filler:    rasterx.NewFiller(width, height, scanner),
		lineWidth: fixed.Int26_6(DefaultOptions.LineWidth * 64),
	}
}

// RasterSceneToImage reads the scene from `stream` and
// rasterizes its wireframe.
func RasterSceneToImage(stream io.Reader, opts *Options) (*image.RGBA, error) {
	sc, err := scenexml.ReadSceneStream(stream)
	if err != nil {
		return nil, err
	}
	return Rasterize(sc, opts)
}

// Rasterize uses a ScannerGV instance to draw the wireframe
// of the scene into an image and returns it.
// If opts is nil, DefaultOptions is used.
func Rasterize(sc *scenexml.Scene, opts *Options) (*image.RGBA, error) {
	if opts == nil {
		opts = &DefaultOptions
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w, h := int(float64(sc.Width)*scale), int(float64(sc.Height)*scale)
	if w <= 0 || h <= 0 {
		return nil, errEmptyImage
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var bg color.Color = color.White
	if opts.Background != nil {
		bg = opts.Background
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	renderer.DrawScene(sc, *opts)
	return img, nil
}

// DrawScene draws meshes first, then Poisson curves and diffusion curves.
func (rd *Renderer) DrawScene(sc *scenexml.Scene, opts Options) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	if opts.LineWidth > 0 {
		rd.lineWidth = fixed.Int26_6(opts.LineWidth * 64)
	}

	for _, mesh := range sc.GradientMeshes {
		rd.drawMesh(mesh, scale, opts.MarkerSize)
	}
	var poissonColor color.Color = color.Gray{Y: 0x80}
	if opts.PoissonColor != nil {
		poissonColor = opts.PoissonColor
	}
	for _, curve := range sc.PoissonCurves {
		rd.strokePolyline(curve.ControlPoints, scale, poissonColor)
	}
	for _, curve := range sc.DiffusionCurves {
		rd.strokePolyline(curve.ControlPoints, scale, curveColor(curve))
	}
}

// curveColor averages the first color of each side.
func curveColor(curve scenexml.DiffusionCurve) color.Color {
	var sides []scenexml.Color
	if len(curve.ColorsLeft) != 0 {
		sides = append(sides, curve.ColorsLeft[0].Color)
	}
	if len(curve.ColorsRight) != 0 {
		sides = append(sides, curve.ColorsRight[0].Color)
	}
	if len(sides) == 0 {
		return color.Black
	}
	var out scenexml.Color
	for _, c := range sides {
		out.R += c.R / float64(len(sides))
		out.G += c.G / float64(len(sides))
		out.B += c.B / float64(len(sides))
	}
	return out
}

// drawMesh strokes the grid edges, assuming positions are stored
// row by row, then marks each vertex with its color.
func (rd *Renderer) drawMesh(mesh scenexml.GradientMesh, scale, markerSize float64) {
	stride := mesh.Cols + 1
	if len(mesh.Positions) != mesh.VertexCount() || len(mesh.Colors) != len(mesh.Positions) {
		return
	}
	for i, p := range mesh.Positions {
		row, col := i/stride, i%stride
		if col+1 < stride {
			rd.strokeSegment(p, mesh.Positions[i+1], scale, mix(mesh.Colors[i], mesh.Colors[i+1]))
		}
		if row < mesh.Rows {
			rd.strokeSegment(p, mesh.Positions[i+stride], scale, mix(mesh.Colors[i], mesh.Colors[i+stride]))
		}
	}
	if markerSize <= 0 {
		return
	}
	for i, p := range mesh.Positions {
		rd.fillSquare(p, scale, markerSize, mesh.Colors[i])
	}
}

func mix(a, b scenexml.Color) scenexml.Color {
	return scenexml.Color{R: (a.R + b.R) / 2, G: (a.G + b.G) / 2, B: (a.B + b.B) / 2}
}

func toFixed(p scenexml.Point, scale float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * scale * 64), Y: fixed.Int26_6(p.Y * scale * 64)}
}

func (rd *Renderer) strokePolyline(points []scenexml.Point, scale float64, c color.Color) {
	if len(points) < 2 {
		return
	}
	rd.dasher.Clear()
	rd.dasher.SetStroke(rd.lineWidth, 4*64, rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round, nil, 0)
	rd.dasher.Start(toFixed(points[0], scale))
	for _, p := range points[1:] {
		rd.dasher.Line(toFixed(p, scale))
	}
	rd.dasher.Stop(false)
	rd.dasher.Scanner.SetColor(c)
	rd.dasher.Draw()
}

func (rd *Renderer) strokeSegment(a, b scenexml.Point, scale float64, c color.Color) {
	rd.strokePolyline([]scenexml.Point{a, b}, scale, c)
}

func (rd *Renderer) fillSquare(center scenexml.Point, scale, size float64, c color.Color) {
	x, y := center.X*scale, center.Y*scale
	half := size / 2
	corner := func(dx, dy float64) fixed.Point26_6 {
		return fixed.Point26_6{X: fixed.Int26_6((x + dx) * 64), Y: fixed.Int26_6((y + dy) * 64)}
	}
	rd.filler.Clear()
	rd.filler.Start(corner(-half, -half))
	rd.filler.Line(corner(half, -half))
	rd.filler.Line(corner(half, half))
	rd.filler.Line(corner(-half, half))
	rd.filler.Stop(true)
	rd.filler.Scanner.SetColor(c)
	rd.filler.Draw()
}
