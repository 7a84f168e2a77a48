package geos

import (
	"testing"

	"github.com/geocql/cql2/pkg/geom"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestIntersectsCrossingLines(t *testing.T) {
	e := newTestEngine(t)
	a, err := geom.ParseWKT("LINESTRING (0 0, 2 2)", -1)
	require.NoError(t, err)
	b, err := geom.ParseWKT("LINESTRING (0 2, 2 0)", -1)
	require.NoError(t, err)

	got, err := e.Intersects(a, b)
	require.NoError(t, err)
	require.True(t, got)
}

func TestWithinPointInPolygon(t *testing.T) {
	e := newTestEngine(t)
	point := geom.NewPoint([]float64{1, 1}, -1)
	polygon, err := geom.ParseWKT("POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", -1)
	require.NoError(t, err)

	got, err := e.Within(point, polygon)
	require.NoError(t, err)
	require.True(t, got)
}

func TestDisjointNonOverlappingPolygons(t *testing.T) {
	e := newTestEngine(t)
	a, err := geom.ParseWKT("POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", -1)
	require.NoError(t, err)
	b, err := geom.ParseWKT("POLYGON ((10 10, 11 10, 11 11, 10 11, 10 10))", -1)
	require.NoError(t, err)

	got, err := e.Disjoint(a, b)
	require.NoError(t, err)
	require.True(t, got)
}

func TestEnvelopeOfLineString(t *testing.T) {
	e := newTestEngine(t)
	line, err := geom.ParseWKT("LINESTRING (0 0, 4 4)", -1)
	require.NoError(t, err)

	env, err := e.Envelope(line)
	require.NoError(t, err)
	require.Equal(t, geom.Polygon, env.Kind)
}

func TestCentroidOfSquare(t *testing.T) {
	e := newTestEngine(t)
	square, err := geom.ParseWKT("POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", -1)
	require.NoError(t, err)

	centroid, err := e.Centroid(square)
	require.NoError(t, err)
	require.Equal(t, geom.Point, centroid.Kind)
	require.InDelta(t, 1.0, centroid.Coords[0][0], 1e-9)
	require.InDelta(t, 1.0, centroid.Coords[0][1], 1e-9)
}

func TestConvexHullOfMultiPoint(t *testing.T) {
	e := newTestEngine(t)
	pts, err := geom.ParseWKT("MULTIPOINT ((0 0), (2 0), (1 1), (0 2), (2 2))", -1)
	require.NoError(t, err)

	hull, err := e.ConvexHull(pts)
	require.NoError(t, err)
	require.Equal(t, geom.Polygon, hull.Kind)
}

func TestBufferExpandsAPoint(t *testing.T) {
	e := newTestEngine(t)
	point := geom.NewPoint([]float64{0, 0}, -1)

	buffered, err := e.Buffer(point, 1.0)
	require.NoError(t, err)
	require.Equal(t, geom.Polygon, buffered.Kind)
}
