package sceneraster

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobguent/usvg-scenes/scenexml"
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	err := png.Encode(&b, m)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func TestRasterizeCurve(t *testing.T) {
	red := []scenexml.ColorPoint{{Color: scenexml.Color{R: 1}}}
	sc := &scenexml.Scene{
		Width: 20, Height: 20,
		DiffusionCurves: []scenexml.DiffusionCurve{{
			ControlPoints: []scenexml.Point{{X: 2, Y: 10}, {X: 18, Y: 10}},
			ColorsLeft:    red,
			ColorsRight:   red,
		}},
	}
	img, err := Rasterize(sc, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())

	on := img.RGBAAt(10, 10)
	assert.Greater(t, on.R, uint8(200))
	assert.Less(t, on.G, uint8(200))

	off := img.RGBAAt(10, 2)
	assert.Equal(t, uint8(0xff), off.G, "background is white")
}

func TestRasterizeMesh(t *testing.T) {
	sc := &scenexml.Scene{
		Width: 10, Height: 10,
		GradientMeshes: []scenexml.GradientMesh{{
			Positions: []scenexml.Point{{X: 5, Y: 5}},
			Colors:    []scenexml.Color{{B: 1}},
		}},
	}
	img, err := Rasterize(sc, &Options{MarkerSize: 4})
	require.NoError(t, err)
	marker := img.RGBAAt(5, 5)
	assert.Less(t, marker.R, uint8(50))
	assert.Greater(t, marker.B, uint8(200))

	img, err = Rasterize(sc, &Options{})
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), img.RGBAAt(5, 5).R, "markers are disabled")
}

func TestRasterizeEmpty(t *testing.T) {
	_, err := Rasterize(&scenexml.Scene{Width: 10}, nil)
	assert.Error(t, err)
}

func TestRasterSceneToImage(t *testing.T) {
	for _, name := range []string{"unified.xml", "legacy.xml", "empty.xml"} {
		f, err := os.Open(filepath.Join("..", "scenexml", "testdata", name))
		require.NoError(t, err)
		img, err := RasterSceneToImage(f, &Options{Scale: 2, LineWidth: 2, MarkerSize: 3})
		f.Close()
		require.NoError(t, err, name)

		sc, err := scenexml.ReadScene(filepath.Join("..", "scenexml", "testdata", name))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 2*sc.Width, 2*sc.Height), img.Bounds())

		_, err = toPngBytes(img)
		assert.NoError(t, err)
	}
}
