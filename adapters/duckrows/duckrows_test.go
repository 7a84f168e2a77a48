package duckrows

import (
	"testing"
	"time"

	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQFromAnyScalars(t *testing.T) {
	q, err := qFromAny(nil)
	require.NoError(t, err)
	assert.True(t, q.IsNull())

	q, err = qFromAny(int64(7))
	require.NoError(t, err)
	n, err := q.ToNum()
	require.NoError(t, err)
	assert.Equal(t, 7.0, n)

	q, err = qFromAny(1.25)
	require.NoError(t, err)
	n, err = q.ToNum()
	require.NoError(t, err)
	assert.Equal(t, 1.25, n)
}

func TestQFromAnyByteSliceIsTreatedAsString(t *testing.T) {
	q, err := qFromAny([]byte("active"))
	require.NoError(t, err)
	s, err := q.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "active", s.String())
}

func TestQFromAnyWKTBytesDecodeAsGeometry(t *testing.T) {
	q, err := qFromAny([]byte("LINESTRING (0 0, 1 1)"))
	require.NoError(t, err)
	g, err := q.ToGeom()
	require.NoError(t, err)
	assert.Equal(t, geom.LineString, g.Kind)
}

func TestQFromAnyDateBound(t *testing.T) {
	ts := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	q, err := qFromAny(ts)
	require.NoError(t, err)

	b, err := q.ToBound()
	require.NoError(t, err)
	assert.Equal(t, value.BoundDate, b.Kind)
}

func TestQFromAnyUnsupportedType(t *testing.T) {
	_, err := qFromAny(struct{}{})
	require.Error(t, err)
}
