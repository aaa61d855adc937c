package scenexml

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCursor(width, height int, opts ...Option) *cursor {
	return &cursor{cfg: newConfig(opts), width: width, height: height}
}

func TestReadPoints(t *testing.T) {
	set := parseRoot(t, `<set>
		<p x="1" y="2"/>
		<other x="100" y="100"/>
		<p x="3"/>
		<p x="0.5" y="0.25"/>
	</set>`)
	c := newTestCursor(200, 100)

	points, err := c.readPoints(set, "p", 3, false, false)
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2}, {3, 0}, {0.5, 0.25}}, points)

	points, err = c.readPoints(set, "p", 3, false, true)
	require.NoError(t, err)
	assert.Equal(t, []Point{{2, 1}, {0, 3}, {0.25, 0.5}}, points)

	// x is scaled by the height, y by the width
	points, err = c.readPoints(set, "p", 3, true, false)
	require.NoError(t, err)
	assert.Equal(t, Point{50, 50}, points[2])
	assert.Equal(t, Point{100, 400}, points[0])

	// scaling happens before swapping
	points, err = c.readPoints(set, "p", 3, true, true)
	require.NoError(t, err)
	assert.Equal(t, Point{400, 100}, points[0])

	points, err = c.readPoints(set, "p", 0, false, false)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestReadPointsMissing(t *testing.T) {
	set := parseRoot(t, `<set><p x="1" y="2"/><p x="1" y="2"/></set>`)
	c := newTestCursor(0, 0)

	points, err := c.readPoints(set, "p", 3, false, false)
	assert.Nil(t, points)
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, MissingElement, se.Kind)
	assert.Equal(t, "p", se.Tag)
	assert.Equal(t, 2, se.Index)
	assert.True(t, errors.Is(err, MissingElement))

	// the first element is required, even for an empty sequence
	_, err = c.readPoints(set, "q", 0, false, false)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "q", se.Tag)
	assert.Equal(t, 0, se.Index)
}

func TestReadColorsChannels(t *testing.T) {
	c := newTestCursor(0, 0)
	for _, tc := range []struct {
		xml      string
		expected Color
	}{
		{`<set><c R="255" G="128" B="0"/></set>`, Color{1, 128. / 255, 0}},
		{`<set><c r="1.0" g="0.502" b="0.0"/></set>`, Color{1, 0.502, 0}},
		// each channel selects its encoding independently
		{`<set><c R="51" g="0.5" b="0.25"/></set>`, Color{0.2, 0.5, 0.25}},
		{`<set><c r="0.5" G="51" b="0.25"/></set>`, Color{0.5, 0.2, 0.25}},
		{`<set><c r="0.5" g="0.25" B="51"/></set>`, Color{0.5, 0.25, 0.2}},
		// uppercase wins when both are present
		{`<set><c R="255" r="0.5" G="0" g="0.5" B="0" b="0.5"/></set>`, Color{1, 0, 0}},
		{`<set><c/></set>`, Color{}},
	} {
		colors, err := c.readColors(parseRoot(t, tc.xml), "c", 1, false)
		require.NoError(t, err)
		require.Len(t, colors, 1)
		assert.InDelta(t, tc.expected.R, colors[0].R, 1e-9, tc.xml)
		assert.InDelta(t, tc.expected.G, colors[0].G, 1e-9, tc.xml)
		assert.InDelta(t, tc.expected.B, colors[0].B, 1e-9, tc.xml)
	}
}

func TestReadColorsEncodingsAgree(t *testing.T) {
	c := newTestCursor(0, 0)
	upper, err := c.readColors(parseRoot(t, `<set><c R="255" G="128" B="0"/></set>`), "c", 1, false)
	require.NoError(t, err)
	lower, err := c.readColors(parseRoot(t, `<set><c r="1.0" g="0.502" b="0.0"/></set>`), "c", 1, false)
	require.NoError(t, err)
	assert.InDelta(t, upper[0].R, lower[0].R, 1e-3)
	assert.InDelta(t, upper[0].G, lower[0].G, 1e-3)
	assert.InDelta(t, upper[0].B, lower[0].B, 1e-3)
}

func TestReadColorsSwap(t *testing.T) {
	c := newTestCursor(0, 0)
	colors, err := c.readColors(parseRoot(t, `<set><c R="255" g="0.5" b="0"/><c r="0.1" g="0.2" b="0.3"/></set>`), "c", 2, true)
	require.NoError(t, err)
	assert.Equal(t, []Color{{0, 0.5, 1}, {0.3, 0.2, 0.1}}, colors)
}

func TestReadColorsMissing(t *testing.T) {
	c := newTestCursor(0, 0)
	_, err := c.readColors(parseRoot(t, `<set><c/></set>`), "c", 2, false)
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, MissingElement, se.Kind)
	assert.Equal(t, 1, se.Index)
}

func parameters(points []ColorPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.T
	}
	return out
}

func TestReadColorPointsNormalization(t *testing.T) {
	c := newTestCursor(0, 0)

	points, err := c.readColorPoints(parseRoot(t, `<set>
		<c r="1" globalID="0"/><c r="1" globalID="2"/><c r="1" globalID="4"/>
	</set>`), "c", 3, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, parameters(points))

	points, err = c.readColorPoints(parseRoot(t, `<set>
		<c globalID="0"/><c globalID="0.3"/><c globalID="0.9"/>
	</set>`), "c", 3, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.3, 0.9}, parameters(points))

	// a maximum of exactly 1 is left untouched
	points, err = c.readColorPoints(parseRoot(t, `<set><c globalID="0.5"/><c globalID="1"/></set>`), "c", 2, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1}, parameters(points))

	// the order of the document is kept
	points, err = c.readColorPoints(parseRoot(t, `<set><c globalID="8"/><c globalID="2"/><c/></set>`), "c", 3, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.25, 0}, parameters(points))
}

func TestReadColorPointsSorted(t *testing.T) {
	c := newTestCursor(0, 0, WithSortParameters(true))
	points, err := c.readColorPoints(parseRoot(t, `<set>
		<c r="0.1" globalID="8"/><c r="0.2" globalID="2"/><c r="0.3" globalID="2"/>
	</set>`), "c", 3, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25, 1}, parameters(points))
	// stable
	assert.Equal(t, 0.2, points[0].R)
	assert.Equal(t, 0.3, points[1].R)
}

func TestReadColorPointsChannels(t *testing.T) {
	c := newTestCursor(0, 0)
	points, err := c.readColorPoints(parseRoot(t, `<set><c R="255" g="0.5" B="51" globalID="0.5"/></set>`), "c", 1, true)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 0.2, points[0].R, 1e-9)
	assert.Equal(t, 0.5, points[0].G)
	assert.Equal(t, 1., points[0].B)
	assert.Equal(t, 0.5, points[0].T)
}

func TestCapacity(t *testing.T) {
	set := parseRoot(t, `<set><a/><b/></set>`)
	assert.Equal(t, 0, capacity(set, -3))
	assert.Equal(t, 1, capacity(set, 1))
	assert.Equal(t, 2, capacity(set, 1<<40))
}

func TestWarnExtraElements(t *testing.T) {
	var messages []string
	logger := slog.New(recordingHandler{
		Handler:  slog.NewTextHandler(io.Discard, nil),
		messages: &messages,
	})
	c := newTestCursor(0, 0, WithLogger(logger))

	one := parseRoot(t, `<set><p/></set>`)
	_, err := c.readPoints(one, "p", 0, false, false)
	require.NoError(t, err)
	_, err = c.readColors(one, "p", 0, false)
	require.NoError(t, err)
	_, err = c.readColorPoints(one, "p", 0, false)
	require.NoError(t, err)
	_, err = c.readPoints(one, "p", 1, false, false)
	require.NoError(t, err)
	assert.Empty(t, messages, "the required first element is not extra")

	two := parseRoot(t, `<set><p/><p/></set>`)
	_, err = c.readPoints(two, "p", 0, false, false)
	require.NoError(t, err)
	_, err = c.readColors(two, "p", 1, false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"WARN ignoring elements beyond the declared count",
		"WARN ignoring elements beyond the declared count",
	}, messages)
}
